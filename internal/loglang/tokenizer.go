// Package loglang tokenizes agent run log lines for the log explorer.
// A line is scanned into typed tokens with byte offsets so the UI can
// highlight timestamps, levels, key=value pairs and trailing JSON.
package loglang

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"
)

// TokenKind classifies a scanned token.
type TokenKind string

const (
	TokenTimestamp TokenKind = "timestamp"
	TokenLevel     TokenKind = "level"
	TokenLogger    TokenKind = "logger"
	TokenKey       TokenKind = "key"
	TokenValue     TokenKind = "value"
	TokenString    TokenKind = "string"
	TokenJSON      TokenKind = "json"
	TokenText      TokenKind = "text"
)

// Token is a classified slice of the input line.
type Token struct {
	Kind  TokenKind `json:"kind"`
	Text  string    `json:"text"`
	Start int       `json:"start"` // byte offset in the line
	End   int       `json:"end"`   // byte offset one past the token
}

var levels = map[string]bool{
	"TRACE": true, "DEBUG": true, "INFO": true,
	"WARN": true, "WARNING": true, "ERROR": true, "FATAL": true,
}

// timestamp layouts accepted at the start of a line, most specific first
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"15:04:05.000",
	"15:04:05",
}

// Tokenize scans one log line. It never fails: anything it cannot
// classify comes back as a text token, so the caller can always
// reconstruct the original line from the tokens.
func Tokenize(line string) []Token {
	s := &scanner{line: line}
	s.run()
	return s.tokens
}

type scanner struct {
	line    string
	pos     int
	tokens  []Token
	sawTime bool
	sawLvl  bool
}

func (s *scanner) run() {
	for s.pos < len(s.line) {
		s.skipSpaces()
		if s.pos >= len(s.line) {
			return
		}

		if s.tryJSONTail() {
			return
		}
		if !s.sawTime && s.tryTimestamp() {
			continue
		}
		if !s.sawLvl && s.tryLevel() {
			continue
		}
		if s.tryQuoted() {
			continue
		}
		if s.tryKeyValue() {
			continue
		}
		if s.tryLogger() {
			continue
		}
		s.scanText()
	}
}

func (s *scanner) emit(kind TokenKind, start, end int) {
	s.tokens = append(s.tokens, Token{
		Kind:  kind,
		Text:  s.line[start:end],
		Start: start,
		End:   end,
	})
	s.pos = end
}

func (s *scanner) skipSpaces() {
	for s.pos < len(s.line) && s.line[s.pos] == ' ' {
		s.pos++
	}
}

// nextWord returns the end offset of the whitespace-delimited word at pos.
func (s *scanner) nextWord() int {
	end := s.pos
	for end < len(s.line) && s.line[end] != ' ' {
		end++
	}
	return end
}

// tryTimestamp accepts a leading timestamp. Layouts with a space
// (date plus time) span two words.
func (s *scanner) tryTimestamp() bool {
	for _, layout := range timeLayouts {
		end := s.pos + len(layout)
		if strings.Contains(layout, " ") {
			first := s.nextWord()
			if first >= len(s.line) {
				continue
			}
			save := s.pos
			s.pos = first + 1
			second := s.nextWord()
			s.pos = save
			end = second
		} else {
			end = s.nextWord()
		}
		if end > len(s.line) {
			continue
		}
		if _, err := time.Parse(layout, s.line[s.pos:end]); err == nil {
			s.emit(TokenTimestamp, s.pos, end)
			s.sawTime = true
			return true
		}
	}
	return false
}

func (s *scanner) tryLevel() bool {
	end := s.nextWord()
	word := strings.Trim(s.line[s.pos:end], "[]")
	if levels[strings.ToUpper(word)] {
		s.emit(TokenLevel, s.pos, end)
		s.sawLvl = true
		return true
	}
	return false
}

// tryLogger accepts a dotted component name right after the level,
// e.g. "editor.clipboard:" or "adapters.redis".
func (s *scanner) tryLogger() bool {
	if !s.sawLvl || s.hasKind(TokenLogger) {
		return false
	}
	end := s.nextWord()
	word := strings.TrimSuffix(s.line[s.pos:end], ":")
	if !strings.Contains(word, ".") {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return false
		}
	}
	s.emit(TokenLogger, s.pos, end)
	return true
}

func (s *scanner) tryQuoted() bool {
	if s.line[s.pos] != '"' {
		return false
	}
	for i := s.pos + 1; i < len(s.line); i++ {
		if s.line[i] == '\\' {
			i++
			continue
		}
		if s.line[i] == '"' {
			s.emit(TokenString, s.pos, i+1)
			return true
		}
	}
	return false // unterminated, let scanText take it
}

func (s *scanner) tryKeyValue() bool {
	end := s.nextWord()
	word := s.line[s.pos:end]
	eq := strings.IndexByte(word, '=')
	if eq <= 0 {
		return false
	}
	key := word[:eq]
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' && r != '-' {
			return false
		}
	}
	s.emit(TokenKey, s.pos, s.pos+eq)
	s.pos++ // skip '='

	// quoted value may contain spaces
	if s.pos < len(s.line) && s.line[s.pos] == '"' {
		if s.tryQuoted() {
			return true
		}
	}
	if s.pos < end {
		s.emit(TokenValue, s.pos, end)
	}
	return true
}

// tryJSONTail claims the rest of the line when it is a valid JSON
// object or array.
func (s *scanner) tryJSONTail() bool {
	c := s.line[s.pos]
	if c != '{' && c != '[' {
		return false
	}
	tail := s.line[s.pos:]
	if !json.Valid([]byte(tail)) {
		return false
	}
	s.emit(TokenJSON, s.pos, len(s.line))
	return true
}

func (s *scanner) scanText() {
	end := s.nextWord()
	s.emit(TokenText, s.pos, end)
}

func (s *scanner) hasKind(kind TokenKind) bool {
	for _, t := range s.tokens {
		if t.Kind == kind {
			return true
		}
	}
	return false
}
