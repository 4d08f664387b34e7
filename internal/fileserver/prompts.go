package fileserver

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"localmcp/internal/fsops"

	"github.com/mark3labs/mcp-go/mcp"
)

const codeReviewInstructions = `You are a code review assistant analyzing the provided file(s).
Your task is to perform a thorough code review focusing on:

1. Code quality and best practices
2. Potential bugs or issues
3. Performance concerns
4. Security vulnerabilities
5. Maintainability and readability
6. Suggestions for improvement

For each issue identified, explain why it's a concern and suggest a specific improvement.
If the code follows best practices in certain areas, acknowledge those as well.
If no file content is provided, assist the user in selecting files to review.`

const summarizeInstructions = `You are a document summarization assistant. Provide concise, accurate
summaries of file contents while preserving the key information. Adapt your
approach based on the file type:

- For code files: explain the purpose, main components, and overall architecture
- For documentation: extract key points, main topics, and important details
- For data files: describe the structure, content type, and significant patterns
- For configuration: highlight important settings and their implications`

const projectStructureInstructions = `You are a project structure analysis assistant. Analyze the directory
structure of a software project and provide insights about its organization:

1. Identify the main components and their responsibilities
2. Recognize the architectural pattern being used (if any)
3. Detect common directories and their purposes (e.g., src, tests, docs)
4. Highlight strengths and potential issues in the organization
5. Suggest improvements for better maintainability and clarity`

func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(mcp.NewPrompt("file.code_review",
		mcp.WithPromptDescription("Review a file's code for quality, bugs, and security issues"),
		mcp.WithArgument("file_uri",
			mcp.ArgumentDescription("file:// URI of the file to review"),
		),
	), s.handleCodeReviewPrompt)

	s.mcpServer.AddPrompt(mcp.NewPrompt("file.summarize",
		mcp.WithPromptDescription("Summarize a file's content"),
		mcp.WithArgument("file_uri",
			mcp.ArgumentDescription("file:// URI of the file to summarize"),
		),
	), s.handleSummarizePrompt)

	s.mcpServer.AddPrompt(mcp.NewPrompt("file.project_structure",
		mcp.WithPromptDescription("Analyze the structure of a project directory"),
		mcp.WithArgument("directory_uri",
			mcp.ArgumentDescription("file:// URI of the directory to analyze"),
		),
	), s.handleProjectStructurePrompt)
}

func (s *Server) handleCodeReviewPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	s.logger.Info("Using code review prompt")

	var body string
	if content, meta, ok := s.promptFile(req.Params.Arguments["file_uri"]); ok {
		body = fmt.Sprintf("Please review the following %s code from file '%s':\n\n```%s\n%s\n```",
			languageForExtension(meta.Extension), meta.Name, meta.Extension, content)
	} else {
		body = "I'd like you to review some code for me. I'll either share a file path or paste the code directly.\n\n" +
			"Please help me improve the code quality, identify issues, and suggest enhancements."
	}

	return mcp.NewGetPromptResult("Code review", []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(codeReviewInstructions+"\n\n"+body)),
	}), nil
}

func (s *Server) handleSummarizePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	s.logger.Info("Using file summarization prompt")

	var body string
	if content, meta, ok := s.promptFile(req.Params.Arguments["file_uri"]); ok {
		body = fmt.Sprintf("Please summarize the following file:\n\nFile name: %s\nFile type: %s\nMIME type: %s\n\nContent:\n```\n%s\n```",
			meta.Name, meta.Extension, meta.MIMEType, content)
	} else {
		body = "I'd like you to summarize a file for me. Please provide a concise yet comprehensive summary " +
			"that captures the main points and purpose of the file.\n\nI'll either share a file path or paste the content directly."
	}

	return mcp.NewGetPromptResult("File summary", []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(summarizeInstructions+"\n\n"+body)),
	}), nil
}

func (s *Server) handleProjectStructurePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	s.logger.Info("Using project structure analysis prompt")

	var body string
	if tree, uri, ok := s.promptTree(req.Params.Arguments["directory_uri"]); ok {
		body = fmt.Sprintf("Please analyze the following project structure for %s:\n\n```\n%s\n```\n\n"+
			"Provide insights about the project organization, identify the main components, "+
			"detect the architectural patterns in use, and suggest any improvements.", uri, tree)
	} else {
		body = "I'd like you to analyze the structure of a project directory.\n\n" +
			"Please provide insights about the overall organization, architectural patterns used, " +
			"main components and their responsibilities, and potential improvements to the structure.\n\n" +
			"I'll either share a directory path or describe the structure."
	}

	return mcp.NewGetPromptResult("Project structure analysis", []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(projectStructureInstructions+"\n\n"+body)),
	}), nil
}

// promptFile resolves an optional file_uri argument to readable text
// content. Any failure (missing argument, policy refusal, binary or
// oversized file) degrades to the no-content form of the prompt.
func (s *Server) promptFile(uri string) (string, fsops.Entry, bool) {
	if uri == "" {
		return "", fsops.Entry{}, false
	}

	p, err := s.guard.Validate(uri)
	if err != nil {
		s.logger.Debug("Prompt file argument rejected", "uri", uri, "error", err)
		return "", fsops.Entry{}, false
	}

	res, err := s.ops.Read(p)
	if err != nil || res.TooLarge || res.Binary {
		return "", fsops.Entry{}, false
	}

	meta, err := s.ops.Metadata(p)
	if err != nil {
		return "", fsops.Entry{}, false
	}

	return res.Content, meta, true
}

// promptTree renders a recursive listing of an optional directory_uri
// argument as an indented tree.
func (s *Server) promptTree(uri string) (string, string, bool) {
	if uri == "" {
		return "", "", false
	}

	dir, err := s.guard.Validate(uri)
	if err != nil {
		s.logger.Debug("Prompt directory argument rejected", "uri", uri, "error", err)
		return "", "", false
	}
	if info, serr := os.Stat(dir); serr != nil || !info.IsDir() {
		return "", "", false
	}

	items, _, err := s.ops.List(dir, true, 5)
	if err != nil {
		s.logger.Debug("Failed to list directory for prompt", "uri", uri, "error", err)
		return "", "", false
	}

	return formatTree(s.relPath(dir), items), uri, true
}

// formatTree renders entries as an indented tree. Entries arrive in
// lexical walk order, so parents always precede their children.
func formatTree(baseRel string, items []fsops.Entry) string {
	var b strings.Builder
	for _, item := range items {
		rel := item.Path
		if baseRel != "." {
			rel = strings.TrimPrefix(rel, baseRel+"/")
		}
		depth := strings.Count(rel, "/")
		indent := strings.Repeat("  ", depth)
		if item.IsDirectory {
			fmt.Fprintf(&b, "%s📁 %s/\n", indent, path.Base(rel))
		} else {
			fmt.Fprintf(&b, "%s📄 %s (%s)\n", indent, path.Base(rel), item.MIMEType)
		}
	}
	return b.String()
}

// languageForExtension maps common source file extensions to a language
// name for prompt context.
func languageForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case "py", "pyw":
		return "Python"
	case "js", "jsx", "ts", "tsx":
		return "JavaScript/TypeScript"
	case "java":
		return "Java"
	case "c", "cpp", "h", "hpp":
		return "C/C++"
	case "go":
		return "Go"
	case "rb":
		return "Ruby"
	case "php":
		return "PHP"
	case "rs":
		return "Rust"
	case "html", "htm":
		return "HTML"
	case "css", "scss", "sass":
		return "CSS"
	default:
		return "Unknown"
	}
}
