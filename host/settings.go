// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// Settings holds the host's small set of user-configurable fields. Values
// are get/set by name through reflection, the same way the teacher's
// debugger settings work, so a new field only needs to be added here
// (with a doc tag) to become reachable from the "set" command.
type Settings struct {
	Verbose bool   `doc:"trace the assembler's two passes to the host's output"`
	Charset string `doc:"default charset for .text directives: ascii, petscii, or screen"`
}

func newSettings() *Settings {
	return &Settings{
		Verbose: false,
		Charset: "ascii",
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	t := reflect.TypeOf(Settings{})
	settingsFields = make([]settingsField, t.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := t.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

// Display writes every setting's current value and documentation string.
func (s *Settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var rendered string
		switch f.kind {
		case reflect.String:
			rendered = fmt.Sprintf("    %-10s \"%s\"", f.name, v.String())
		case reflect.Bool:
			rendered = fmt.Sprintf("    %-10s %v", f.name, v.Bool())
		default:
			rendered = fmt.Sprintf("    %-10s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-28s (%s)\n", rendered, f.doc)
	}
}

// Kind reports the reflect.Kind of the named setting, or reflect.Invalid
// if no such setting exists.
func (s *Settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

// Set assigns value to the named setting.
func (s *Settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	vIn := reflect.ValueOf(value)
	if !vIn.Type().ConvertibleTo(f.typ) {
		return fmt.Errorf("invalid type for setting '%s'", key)
	}

	vOut := reflect.ValueOf(s).Elem().Field(f.index)
	vOut.Set(vIn.Convert(f.typ))
	return nil
}
