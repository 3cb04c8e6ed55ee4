// Package commands handles parsing of raw command-line input for the LCRM tools:
// positionals, multi-valued --options, query pairs and inline/file JSON input.
package commands

import "strings"

// optionPrefix marks a token as an option.
const optionPrefix = "--"

// flagTrue is the value recorded for an option given without a value.
const flagTrue = "true"

// Parsed is the outcome of parsing a raw argument list.
type Parsed struct {
	// Positionals holds every token that is not an option, in encounter order.
	Positionals []string

	// Options holds every option, multi-valued and in encounter order.
	Options Options
}

// Action returns the first positional, or "" when there is none.
func (p Parsed) Action() string {
	if len(p.Positionals) == 0 {
		return ""
	}
	return p.Positionals[0]
}

// Parse splits args into positionals and options.
//
// Rules:
//   - --key=value sets the value directly (the value may be empty or contain '=')
//   - --key value consumes the next token unless it is missing, empty or another option,
//     in which case the value is "true"
//   - repeated keys accumulate; unknown keys are never rejected
//
// A token whose '=' sits right after the prefix ("--=x") is not split, so its key is "=x".
// Parse never fails; validation belongs to the command that reads the options.
func Parse(args []string) Parsed {
	parsed := Parsed{
		Positionals: []string{},
		Options:     Options{},
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, optionPrefix) {
			parsed.Positionals = append(parsed.Positionals, arg)
			continue
		}

		if eq := strings.Index(arg, "="); eq > len(optionPrefix) {
			parsed.Options.add(arg[len(optionPrefix):eq], arg[eq+1:])
			continue
		}

		key := arg[len(optionPrefix):]
		if i+1 >= len(args) || args[i+1] == "" || strings.HasPrefix(args[i+1], optionPrefix) {
			parsed.Options.add(key, flagTrue)
			continue
		}

		parsed.Options.add(key, args[i+1])
		i++
	}

	return parsed
}
