package command

import (
	"fmt"
	"reflect"
	"strings"
)

// ParseErrorKind enumerates spec.md §4.9's parse failure kinds.
type ParseErrorKind int

const (
	TooFewArguments ParseErrorKind = iota
	TooManyArguments
	IncorrectFormat
	UnknownCommand
	WrongBotName
	CustomError
)

func (k ParseErrorKind) String() string {
	switch k {
	case TooFewArguments:
		return "too_few_arguments"
	case TooManyArguments:
		return "too_many_arguments"
	case IncorrectFormat:
		return "incorrect_format"
	case UnknownCommand:
		return "unknown_command"
	case WrongBotName:
		return "wrong_bot_name"
	case CustomError:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseError carries the failure kind plus context needed to render a
// helpful message (expected/found argument counts, the wrapped cause for
// CustomError).
type ParseError struct {
	Kind     ParseErrorKind
	Expected int
	Found    int
	Err      error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case TooFewArguments:
		return fmt.Sprintf("command: too few arguments: expected %d, found %d", e.Expected, e.Found)
	case TooManyArguments:
		return fmt.Sprintf("command: too many arguments: expected %d, found %d", e.Expected, e.Found)
	case IncorrectFormat:
		return fmt.Sprintf("command: incorrect argument format: %v", e.Err)
	case UnknownCommand:
		return "command: unknown command"
	case WrongBotName:
		return "command: @bot_username doesn't match"
	default:
		return fmt.Sprintf("command: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse matches text against d's registered variants. botUsername (without
// the leading '@') is used to validate an optional "@bot_username" suffix
// on the command name; pass "" to skip that check. On success it returns a
// pointer to a freshly allocated instance of the matched variant's field
// type, populated per its ArgMode.
func (d *Descriptor) Parse(text, botUsername string) (any, *ParseError) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, d.Prefix) {
		return nil, &ParseError{Kind: UnknownCommand}
	}

	rest := text[len(d.Prefix):]
	nameEnd := strings.IndexAny(rest, " \t\n")
	var head, argText string
	if nameEnd < 0 {
		head = rest
	} else {
		head = rest[:nameEnd]
		argText = strings.TrimSpace(rest[nameEnd+1:])
	}

	name := head
	if at := strings.IndexByte(head, '@'); at >= 0 {
		name = head[:at]
		mentioned := head[at+1:]
		if botUsername != "" && !strings.EqualFold(mentioned, botUsername) {
			return nil, &ParseError{Kind: WrongBotName}
		}
	}

	idx, ok := d.byName[name]
	if !ok {
		return nil, &ParseError{Kind: UnknownCommand}
	}
	v := d.variants[idx]

	instance := reflect.New(v.fieldType)
	switch v.mode {
	case ArgCustom:
		if err := instance.Interface().(customParser).ParseArgs(argText); err != nil {
			return nil, &ParseError{Kind: CustomError, Err: err}
		}
	case ArgDefault:
		if v.fieldType.NumField() == 1 {
			if err := parseField(instance.Elem().Field(0), argText); err != nil {
				return nil, &ParseError{Kind: IncorrectFormat, Err: err}
			}
		}
	case ArgSplit:
		sep := v.separator
		if sep == "" {
			sep = d.Separator
		}
		var tokens []string
		if argText != "" {
			tokens = strings.Split(argText, sep)
		}
		n := v.fieldType.NumField()
		if len(tokens) < n {
			return nil, &ParseError{Kind: TooFewArguments, Expected: n, Found: len(tokens)}
		}
		if len(tokens) > n {
			return nil, &ParseError{Kind: TooManyArguments, Expected: n, Found: len(tokens)}
		}
		for i := 0; i < n; i++ {
			if err := parseField(instance.Elem().Field(i), tokens[i]); err != nil {
				return nil, &ParseError{Kind: IncorrectFormat, Err: err}
			}
		}
	}

	return instance.Interface(), nil
}

// Descriptions returns each non-hidden variant's {prefix+name, description},
// in registration order — the data a "/help" endpoint renders.
func (d *Descriptor) Descriptions() []string {
	var out []string
	for _, v := range d.variants {
		if v.hidden {
			continue
		}
		out = append(out, fmt.Sprintf("%s%s - %s", d.Prefix, v.name, v.description))
	}
	return out
}
