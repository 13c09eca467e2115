package display

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/git-dit/dit/pkg/message"
	"github.com/git-dit/dit/pkg/trailer"
)

// TrailerField is one declared trailer offered to the composer form: a
// known key (built-in or from .dit/trailers.yml) plus the options a
// string-kind trailer should be restricted to, if any (e.g. Issue-status
// is conventionally "open"/"closed" but the registry doesn't enforce it).
type TrailerField struct {
	Spec    trailer.Spec
	Options []string // empty means free text
}

// ComposeInput collects a subject, a body, and values for a set of
// declared trailers, by running an interactive form. It is used for "dit
// new" and "dit reply" when no message was piped in on stdin, the
// equivalent of wizard.go's form-driven vendor composer but producing a
// commit message instead of a VendorSpec.
func ComposeInput(subjectDefault string, bodyDefault string, fields []TrailerField) (message.Message, error) {
	subject := subjectDefault
	body := bodyDefault

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Value(&subject).
				Validate(requireNonEmpty),
			huh.NewText().
				Title("Body").
				Value(&body),
		),
	}

	values := make([]string, len(fields))
	for i, f := range fields {
		i, f := i, f
		if len(f.Options) > 0 {
			var opts []huh.Option[string]
			for _, o := range f.Options {
				opts = append(opts, huh.NewOption(o, o))
			}
			groups = append(groups, huh.NewGroup(
				huh.NewSelect[string]().
					Title(f.Spec.Key).
					Options(opts...).
					Value(&values[i]),
			))
		} else {
			groups = append(groups, huh.NewGroup(
				huh.NewInput().
					Title(f.Spec.Key).
					Value(&values[i]),
			))
		}
	}

	if err := huh.NewForm(groups...).Run(); err != nil {
		return message.Message{}, fmt.Errorf("composer: %w", err)
	}

	var trailers []message.RawTrailer
	for i, f := range fields {
		if values[i] == "" {
			continue
		}
		trailers = append(trailers, message.RawTrailer{Key: f.Spec.Key, Value: values[i]})
	}

	return message.Message{
		Subject:   subject,
		BodyLines: splitLines(body),
		Trailers:  trailers,
	}, nil
}

func requireNonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("subject cannot be empty")
	}
	return nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
