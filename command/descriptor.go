// Package command parses "/name@bot arg1 arg2" style text messages into a
// user-defined Go struct's variants, replacing the Rust derive macro spec.md
// §9 calls out as "not specified for this port" with reflection over struct
// tags — the same approach encoding/json and spf13/cobra (present in the
// pack via petal-labs-iris) use for the same "decide shape from a tag at
// runtime instead of at compile time" problem.
package command

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ArgMode selects how a variant's trailing text is parsed into its fields.
type ArgMode int

const (
	// ArgDefault parses the entire remaining text into the variant's single
	// field using that field's own type.
	ArgDefault ArgMode = iota
	// ArgSplit splits the remaining text by Separator into one token per
	// field, in field declaration order.
	ArgSplit
	// ArgCustom hands the remaining text to the variant's own ParseArgs
	// method instead of reflecting over its fields.
	ArgCustom
)

// variant describes one command: {prefix, canonical name, aliases,
// description, parser, hidden flag} per spec.md §3's Command descriptor.
type variant struct {
	name        string
	aliases     []string
	description string
	hidden      bool
	mode        ArgMode
	separator   string
	fieldType   reflect.Type
}

// Descriptor is built once via Describe and reused to parse every incoming
// message. The whole enum carries {rename rule, global prefix, global
// description, command separator}, per spec.md §3.
type Descriptor struct {
	Prefix            string
	GlobalDescription string
	RenameRule        RenameRule
	Separator         string // argument separator; default is a single space

	variants []variant
	byName   map[string]int // canonical + alias name -> index into variants
}

// customParser is implemented by a variant's field type when it wants full
// control over its own argument text instead of positional field parsing.
type customParser interface {
	ParseArgs(text string) error
}

// Describe builds a Descriptor from sum, a struct whose exported fields each
// represent one command variant. A field's type is itself a struct carrying
// that command's own parsed arguments; its tag configures the variant:
//
//	`command:"name=start,alias=begin|go,description=start the bot,hidden"`
//
// Name defaults to the field name rendered under RenameRule if omitted. A
// variant whose field type implements customParser uses ArgCustom; one with
// exactly one field uses ArgDefault; otherwise ArgSplit.
func Describe(sum any, prefix string, renameRule RenameRule) (*Descriptor, error) {
	d := &Descriptor{Prefix: prefix, RenameRule: renameRule, Separator: " ", byName: map[string]int{}}

	t := reflect.TypeOf(sum)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("command: Describe requires a struct, got %s", t.Kind())
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		v, err := buildVariant(f, renameRule)
		if err != nil {
			return nil, fmt.Errorf("command: field %s: %w", f.Name, err)
		}
		idx := len(d.variants)
		d.variants = append(d.variants, v)
		d.byName[v.name] = idx
		for _, alias := range v.aliases {
			d.byName[alias] = idx
		}
	}

	return d, nil
}

func buildVariant(f reflect.StructField, renameRule RenameRule) (variant, error) {
	v := variant{name: renameRule.Apply(f.Name), separator: " ", fieldType: f.Type}

	ft := f.Type
	if ft.Kind() == reflect.Ptr {
		ft = ft.Elem()
	}
	if reflect.PointerTo(ft).Implements(reflect.TypeOf((*customParser)(nil)).Elem()) {
		v.mode = ArgCustom
	} else if ft.Kind() == reflect.Struct && ft.NumField() > 1 {
		v.mode = ArgSplit
	} else {
		v.mode = ArgDefault
	}
	v.fieldType = ft

	tag, ok := f.Tag.Lookup("command")
	if !ok {
		return v, nil
	}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "hidden":
			v.hidden = true
		case strings.HasPrefix(part, "name="):
			v.name = strings.TrimPrefix(part, "name=")
		case strings.HasPrefix(part, "alias="):
			v.aliases = strings.Split(strings.TrimPrefix(part, "alias="), "|")
		case strings.HasPrefix(part, "description="):
			v.description = strings.TrimPrefix(part, "description=")
		case strings.HasPrefix(part, "sep="):
			v.separator = strings.TrimPrefix(part, "sep=")
		}
	}
	return v, nil
}

// parseField converts one token into dst, a settable reflect.Value of a
// basic kind (string, the integer kinds, float kinds, or bool).
func parseField(dst reflect.Value, token string) error {
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(token)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return err
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return err
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return err
		}
		dst.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(token)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	default:
		return fmt.Errorf("command: unsupported field kind %s", dst.Kind())
	}
	return nil
}
