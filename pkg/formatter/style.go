package formatter

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidStyle is returned when a style fails validation.
var ErrInvalidStyle = errors.New("invalid format style")

// Style holds the spacing and wrapping preferences consulted by the
// annotator and by downstream line-wrapping.
type Style struct {
	// CommentMinSpaces is the number of spaces required before a trailing
	// comment.
	CommentMinSpaces int `yaml:"comment_min_spaces" json:"comment_min_spaces"`

	IndentationSpaces int `yaml:"indentation_spaces" json:"indentation_spaces"`
	WrapSpaces        int `yaml:"wrap_spaces" json:"wrap_spaces"`
	ColumnLimit       int `yaml:"column_limit" json:"column_limit"`

	OverColumnLimitPenalty int `yaml:"over_column_limit_penalty" json:"over_column_limit_penalty"`
	LineBreakPenalty       int `yaml:"line_break_penalty" json:"line_break_penalty"`
}

// DefaultStyle returns the built-in style.
func DefaultStyle() Style {
	return Style{
		CommentMinSpaces:       2,
		IndentationSpaces:      2,
		WrapSpaces:             4,
		ColumnLimit:            100,
		OverColumnLimitPenalty: 100,
		LineBreakPenalty:       2,
	}
}

// Validate checks that every setting is usable.
func (s Style) Validate() error {
	switch {
	case s.CommentMinSpaces < 0:
		return fmt.Errorf("%w: comment_min_spaces must not be negative", ErrInvalidStyle)
	case s.IndentationSpaces < 0:
		return fmt.Errorf("%w: indentation_spaces must not be negative", ErrInvalidStyle)
	case s.WrapSpaces < 0:
		return fmt.Errorf("%w: wrap_spaces must not be negative", ErrInvalidStyle)
	case s.ColumnLimit <= 0:
		return fmt.Errorf("%w: column_limit must be positive", ErrInvalidStyle)
	case s.OverColumnLimitPenalty < 0 || s.LineBreakPenalty < 0:
		return fmt.Errorf("%w: penalties must not be negative", ErrInvalidStyle)
	}
	return nil
}

// LoadStyle reads a YAML style file. Settings missing from the file keep
// their default values.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	data, err := os.ReadFile(path)
	if err != nil {
		return style, fmt.Errorf("failed to read style file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return style, fmt.Errorf("failed to parse style file %s: %w", path, err)
	}
	if err := style.Validate(); err != nil {
		return style, err
	}
	return style, nil
}
