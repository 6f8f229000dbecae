package command

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Parser matches REPL input to commands using keywords and simple patterns.
type Parser struct {
	log      *logger.Logger
	patterns []patternRule
}

// patternRule captures the optional "target" and "args" named groups.
type patternRule struct {
	regex *regexp.Regexp
	typ   Type
}

// NewParser creates a keyword-based command parser.
func NewParser(log *logger.Logger) *Parser {
	p := &Parser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(list|ls|recipes)$`), List},
		{regexp.MustCompile(`^(?P<target>\d{1,4})$`), Show},
		{regexp.MustCompile(`(?i)^(show|view|open)\s+(?P<target>\S+)$`), Show},
		{regexp.MustCompile(`(?i)^(add|new)(?:\s+(?P<args>.+))?$`), Add},
		{regexp.MustCompile(`(?i)^(edit|change)\s+(?P<target>\S+)(?:\s+(?P<args>.+))?$`), Edit},
		{regexp.MustCompile(`(?i)^(delete|del|rm|remove)\s+(?P<target>\S+)$`), Delete},
		{regexp.MustCompile(`(?i)^(fav|favorite|favourite|star)\s+(?P<target>\S+)$`), Favorite},
		{regexp.MustCompile(`(?i)^filter(?:\s+(?P<args>.+))?$`), Filter},
		{regexp.MustCompile(`(?i)^(search|find)(?:\s+(?P<args>.+))?$`), Search},
		{regexp.MustCompile(`(?i)^sort\s+(?P<args>\S+)$`), Sort},
		{regexp.MustCompile(`(?i)^(shop|buy)\s+(?P<target>\S+)$`), Shop},
		{regexp.MustCompile(`(?i)^(cart|shopping|shopping list)$`), Cart},
		{regexp.MustCompile(`(?i)^(clear-cart|clear cart|empty cart)$`), ClearCart},
		{regexp.MustCompile(`(?i)^share\s+(?P<target>\S+)$`), Share},
		{regexp.MustCompile(`(?i)^export\s+(?P<args>.+)$`), Export},
		{regexp.MustCompile(`(?i)^import\s+(?P<args>.+)$`), Import},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), Help},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), Quit},
	}
	return p
}

// Parse converts user input into a command. Input that matches nothing
// yields an Unknown command carrying the input in Args.
func (p *Parser) Parse(ctx context.Context, input string) (*Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &Command{Type: Unknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		cmd := &Command{Type: rule.typ}
		if i := rule.regex.SubexpIndex("target"); i > 0 {
			cmd.Target = m[i]
		}
		if i := rule.regex.SubexpIndex("args"); i > 0 {
			cmd.Args = m[i]
		}
		p.log.Debug("matched command: %s", cmd.Type)
		return cmd, nil
	}

	p.log.Debug("no match, returning unknown command")
	return &Command{Type: Unknown, Args: trimmed}, nil
}
