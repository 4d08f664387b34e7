package timezone

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"localmcp/internal/logging"

	"github.com/araddon/dateparse"
	"github.com/biter777/countries"
)

// MelbourneZone is the zone served by the Melbourne shortcut.
const MelbourneZone = "Australia/Melbourne"

const (
	defaultDateFormat     = "2006-01-02"
	defaultTimeFormat     = "15:04:05"
	defaultDatetimeFormat = "2006-01-02 15:04:05"
)

// Service performs timezone operations against the IANA database.
type Service struct {
	defaultZone    string
	logger         *logging.AppLogger
	now            func() time.Time
	dateFormat     string
	timeFormat     string
	datetimeFormat string
	zoneTabPath    string

	tabOnce sync.Once
	tab     []zoneEntry
	tabErr  error
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithFormats overrides the date, time and datetime layouts.
func WithFormats(date, tm, datetime string) Option {
	return func(s *Service) {
		if date != "" {
			s.dateFormat = date
		}
		if tm != "" {
			s.timeFormat = tm
		}
		if datetime != "" {
			s.datetimeFormat = datetime
		}
	}
}

// WithZoneTab overrides the zone table location.
func WithZoneTab(path string) Option {
	return func(s *Service) { s.zoneTabPath = path }
}

// NewService creates a service with the given default zone. The default
// must name a valid IANA zone.
func NewService(defaultZone string, logger *logging.AppLogger, opts ...Option) (*Service, error) {
	if defaultZone == "" {
		defaultZone = MelbourneZone
	}
	if _, err := time.LoadLocation(defaultZone); err != nil {
		return nil, fmt.Errorf("invalid default timezone %q: %w", defaultZone, err)
	}

	s := &Service{
		defaultZone:    defaultZone,
		logger:         logger,
		now:            time.Now,
		dateFormat:     defaultDateFormat,
		timeFormat:     defaultTimeFormat,
		datetimeFormat: defaultDatetimeFormat,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DefaultZone returns the zone used when a request names none.
func (s *Service) DefaultZone() string {
	return s.defaultZone
}

func (s *Service) locate(name string) (string, *time.Location, error) {
	if name == "" {
		name = s.defaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return "", nil, fmt.Errorf("invalid timezone: %s", name)
	}
	return name, loc, nil
}

// Current returns the current time in the named zone, or the default
// zone when name is empty.
func (s *Service) Current(name string) (TimeInfo, error) {
	name, loc, err := s.locate(name)
	if err != nil {
		return TimeInfo{}, err
	}
	return s.timeInfo(name, s.now().In(loc)), nil
}

// Melbourne returns the current time in Melbourne, Australia.
func (s *Service) Melbourne() (TimeInfo, error) {
	return s.Current(MelbourneZone)
}

func (s *Service) timeInfo(name string, t time.Time) TimeInfo {
	abbr, offset := t.Zone()
	_, week := t.ISOWeek()

	return TimeInfo{
		Timezone:       name,
		Datetime:       t.Format(s.datetimeFormat),
		Date:           t.Format(s.dateFormat),
		Time:           t.Format(s.timeFormat),
		Timestamp:      t.Unix(),
		UTCOffset:      t.Format("-0700"),
		UTCOffsetHours: float64(offset) / 3600,
		IsDST:          t.IsDST(),
		DayOfWeek:      t.Weekday().String(),
		DayOfYear:      t.YearDay(),
		WeekOfYear:     week,
		Abbreviation:   abbr,
	}
}

// Convert interprets value in the source zone and expresses it in the
// target zone. Bare clock times ("14:30", "14:30:45") are taken as
// today in the source zone; anything else is parsed as a full datetime
// and localized to the source zone unless it carries its own offset.
func (s *Service) Convert(value, source, target string) (Conversion, error) {
	source, srcLoc, err := s.locate(source)
	if err != nil {
		return Conversion{}, err
	}
	target, dstLoc, err := s.locate(target)
	if err != nil {
		return Conversion{}, err
	}

	t, err := s.parseInZone(value, srcLoc)
	if err != nil {
		return Conversion{}, err
	}

	converted := t.In(dstLoc)

	_, srcOffset := t.Zone()
	_, dstOffset := converted.Zone()

	return Conversion{
		Original:            s.endpoint(source, t),
		Converted:           s.endpoint(target, converted),
		TimeDifferenceHours: float64(dstOffset-srcOffset) / 3600,
	}, nil
}

func (s *Service) endpoint(name string, t time.Time) ConversionEndpoint {
	abbr, _ := t.Zone()
	return ConversionEndpoint{
		Datetime:     t.Format(s.datetimeFormat),
		Timezone:     name,
		IsDST:        t.IsDST(),
		Abbreviation: abbr,
	}
}

func (s *Service) parseInZone(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}

	// Bare clock time: today's date in the source zone.
	if strings.Contains(value, ":") && !strings.ContainsAny(value, "/-") {
		var hour, min, sec int
		n, err := fmt.Sscanf(value, "%d:%d:%d", &hour, &min, &sec)
		if err != nil && n < 2 {
			return time.Time{}, fmt.Errorf("could not parse time string: %s", value)
		}
		if hour < 0 || hour > 23 || min < 0 || min > 59 || sec < 0 || sec > 59 {
			return time.Time{}, fmt.Errorf("time out of range: %s", value)
		}
		now := s.now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, loc), nil
	}

	t, err := dateparse.ParseIn(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse time string: %s", value)
	}
	return t, nil
}

// Info returns detailed metadata for the named zone, including the next
// DST transition within the coming year when the zone has one.
func (s *Service) Info(name string) (ZoneInfo, error) {
	name, loc, err := s.locate(name)
	if err != nil {
		return ZoneInfo{}, err
	}

	now := s.now().In(loc)
	abbr, offset := now.Zone()

	info := ZoneInfo{
		Timezone:       name,
		Country:        s.countryName(name),
		UTCOffset:      now.Format("-0700"),
		UTCOffsetHours: float64(offset) / 3600,
		IsDST:          now.IsDST(),
		CurrentTime:    now.Format(s.datetimeFormat),
	}
	if info.IsDST {
		info.DSTAbbreviation = abbr
	} else {
		info.StandardAbbreviation = abbr
	}

	if transition, kind, ok := s.nextDSTTransition(loc); ok {
		info.NextDSTTransition = transition.Format(s.datetimeFormat)
		info.NextDSTTransitionType = kind
	}

	return info, nil
}

// nextDSTTransition scans the coming year for a change in DST state and
// narrows it down to the second. Zones without DST report none.
func (s *Service) nextDSTTransition(loc *time.Location) (time.Time, string, bool) {
	start := s.now().In(loc)
	current := start.IsDST()
	limit := start.Add(370 * 24 * time.Hour)

	for t := start.Truncate(time.Hour); t.Before(limit); t = t.Add(time.Hour) {
		if t.In(loc).IsDST() == current {
			continue
		}

		lo, hi := t.Add(-time.Hour), t
		for hi.Sub(lo) > time.Second {
			mid := lo.Add(hi.Sub(lo) / 2)
			if mid.In(loc).IsDST() == current {
				lo = mid
			} else {
				hi = mid
			}
		}

		kind := "end"
		if !current {
			kind = "start"
		}
		return hi.In(loc), kind, true
	}
	return time.Time{}, "", false
}

// List enumerates zones from the zone table, optionally filtered by ISO
// country code or by a region substring of the zone name. Results are
// sorted by UTC offset.
func (s *Service) List(countryCode, region string) (ZoneList, error) {
	entries, err := s.zoneTab()
	if err != nil {
		return ZoneList{}, err
	}

	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))

	var items []ZoneListItem
	for _, e := range entries {
		if countryCode != "" && !containsCode(e.Countries, countryCode) {
			continue
		}
		if region != "" && !strings.Contains(e.Name, region) {
			continue
		}

		loc, lerr := time.LoadLocation(e.Name)
		if lerr != nil {
			s.logger.Warn("Skipping unloadable zone", "zone", e.Name, "error", lerr)
			continue
		}

		now := s.now().In(loc)
		abbr, offset := now.Zone()
		items = append(items, ZoneListItem{
			Timezone:       e.Name,
			UTCOffset:      now.Format("-0700"),
			UTCOffsetHours: float64(offset) / 3600,
			IsDST:          now.IsDST(),
			Abbreviation:   abbr,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].UTCOffsetHours != items[j].UTCOffsetHours {
			return items[i].UTCOffsetHours < items[j].UTCOffsetHours
		}
		return items[i].Timezone < items[j].Timezone
	})

	if items == nil {
		items = []ZoneListItem{}
	}
	return ZoneList{
		Timezones:     items,
		Count:         len(items),
		FilterCountry: countryCode,
		FilterRegion:  region,
	}, nil
}

func (s *Service) zoneTab() ([]zoneEntry, error) {
	s.tabOnce.Do(func() {
		s.tab, s.tabErr = loadZoneTab(s.zoneTabPath)
		if s.tabErr != nil {
			s.logger.Error("Failed to load zone table", "error", s.tabErr)
		}
	})
	return s.tab, s.tabErr
}

// countryName resolves the first country covering zone to its English
// name, or "" when the zone is not in the table.
func (s *Service) countryName(zone string) string {
	entries, err := s.zoneTab()
	if err != nil {
		return ""
	}
	codes := countriesFor(entries, zone)
	if len(codes) == 0 {
		return ""
	}
	country := countries.ByName(codes[0])
	if country == countries.Unknown {
		return ""
	}
	return country.String()
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
