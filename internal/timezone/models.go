package timezone

// TimeInfo describes the current moment in one timezone.
type TimeInfo struct {
	Timezone       string  `json:"timezone"`
	Datetime       string  `json:"datetime"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Timestamp      int64   `json:"timestamp"`
	UTCOffset      string  `json:"utcOffset"`
	UTCOffsetHours float64 `json:"utcOffsetHours"`
	IsDST          bool    `json:"isDst"`
	DayOfWeek      string  `json:"dayOfWeek"`
	DayOfYear      int     `json:"dayOfYear"`
	WeekOfYear     int     `json:"weekOfYear"`
	Abbreviation   string  `json:"timezoneAbbreviation"`
}

// ConversionEndpoint is one side of a conversion result.
type ConversionEndpoint struct {
	Datetime     string `json:"datetime"`
	Timezone     string `json:"timezone"`
	IsDST        bool   `json:"isDst"`
	Abbreviation string `json:"timezoneAbbreviation"`
}

// Conversion is the result of converting a time between two zones.
type Conversion struct {
	Original            ConversionEndpoint `json:"original"`
	Converted           ConversionEndpoint `json:"converted"`
	TimeDifferenceHours float64            `json:"timeDifferenceHours"`
}

// ZoneInfo describes a timezone in detail, including the next DST
// transition when one falls within the coming year.
type ZoneInfo struct {
	Timezone              string  `json:"timezone"`
	Country               string  `json:"country,omitempty"`
	UTCOffset             string  `json:"utcOffset"`
	UTCOffsetHours        float64 `json:"utcOffsetHours"`
	IsDST                 bool    `json:"isDst"`
	DSTAbbreviation       string  `json:"dstAbbreviation,omitempty"`
	StandardAbbreviation  string  `json:"standardAbbreviation,omitempty"`
	NextDSTTransition     string  `json:"nextDstTransition,omitempty"`
	NextDSTTransitionType string  `json:"nextDstTransitionType,omitempty"`
	CurrentTime           string  `json:"currentTime"`
}

// ZoneListItem is a single entry in a zone listing.
type ZoneListItem struct {
	Timezone       string  `json:"timezone"`
	UTCOffset      string  `json:"utcOffset"`
	UTCOffsetHours float64 `json:"utcOffsetHours"`
	IsDST          bool    `json:"isDst"`
	Abbreviation   string  `json:"abbreviation"`
}

// ZoneList is a filtered listing of zones.
type ZoneList struct {
	Timezones     []ZoneListItem `json:"timezones"`
	Count         int            `json:"count"`
	FilterCountry string         `json:"filterCountry,omitempty"`
	FilterRegion  string         `json:"filterRegion,omitempty"`
}
