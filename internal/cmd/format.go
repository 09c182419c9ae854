package cmd

import (
	"fmt"
	"slices"
	"strings"
)

type OutputFormat string

type OutputFormats []OutputFormat

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

func AllowedOutputFormats() OutputFormats {
	formats := []OutputFormat{
		FormatJSON,
		FormatText,
	}

	slices.Sort(formats)

	return formats
}

// String implements fmt.Stringer for a collection of output formats,
// converting them to a comma separated string.
func (f *OutputFormats) String() string {
	efs := *f
	out := make([]string, len(efs))
	for i := range efs {
		out[i] = efs[i].String()
	}
	return strings.Join(out, ", ")
}

func (f OutputFormat) String() string {
	return string(f)
}

// Normalize handles case-insensitivity and trimming.
func (f OutputFormat) Normalize() OutputFormat {
	return OutputFormat(strings.ToLower(strings.TrimSpace(string(f))))
}

// Set is required by Cobra as part of implementing flag.Value.
func (f *OutputFormat) Set(v string) error {
	format, err := ParseOutputFormat(v)
	if err != nil {
		return err
	}
	*f = format
	return nil
}

// Type is used by Cobra to get the 'type' of an output format for display purposes.
// This is also required by Cobra as part of implementing flag.Value.
func (f *OutputFormat) Type() string {
	return "format"
}

// ParseOutputFormat validates a user-supplied output format value.
func ParseOutputFormat(value string) (OutputFormat, error) {
	format := OutputFormat(value).Normalize()
	if !slices.Contains(AllowedOutputFormats(), format) {
		allowed := AllowedOutputFormats()
		return "", fmt.Errorf("invalid output format '%s', allowed: %s", value, allowed.String())
	}
	return format, nil
}
