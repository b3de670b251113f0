// =================================================================================
//
//			mx-alias - https://www.foxhollow.cc/projects/mx-alias/
//
//		 mx-alias reads the card routing of a digital mixing console and
//	  names the matching audio interface ports on the recording host
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package mixer

import (
	"context"
	"encoding/json"
	"fmt"
)

// Family is a console product line with its own routing enumerations.
type Family int8

const (
	FamilyUnknown Family = iota
	FamilyX32
	FamilyXAir
)

// FamilyMap maps config and flag values to families.
var FamilyMap = map[string]Family{
	"auto": FamilyUnknown,
	"x32":  FamilyX32,
	"xair": FamilyXAir,
}

func (f Family) String() string {
	switch f {
	case FamilyX32:
		return "X32"
	case FamilyXAir:
		return "XAir"
	}
	return "unknown"
}

func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Scanner is the capability set every console family implements.
type Scanner interface {
	// EnsureSampleRate switches the console to 44.1kHz when it runs on
	// a clock it controls and is set to another rate.
	EnsureSampleRate(ctx context.Context) error

	// ScanCardRouting returns one label per card/USB output slot, in slot order.
	ScanCardRouting(ctx context.Context) ([]Label, error)

	// Terminate releases the console connection.
	Terminate() error
}

//
// labels
//

// Label is a resolved display name. The zero Label is absent.
type Label struct {
	text  string
	valid bool
}

func Named(text string) Label {
	return Label{text: text, valid: true}
}

// Namef builds a present label with fmt.Sprintf.
func Namef(format string, args ...any) Label {
	return Named(fmt.Sprintf(format, args...))
}

func (l Label) Valid() bool {
	return l.valid
}

// String returns the label text, or "" for an absent label.
func (l Label) String() string {
	return l.text
}

func (l Label) MarshalJSON() ([]byte, error) {
	if !l.valid {
		return []byte("null"), nil
	}

	return json.Marshal(l.text)
}

// Labels makes present labels from strings.
func Labels(texts ...string) []Label {
	labels := make([]Label, len(texts))

	for i, text := range texts {
		labels[i] = Named(text)
	}

	return labels
}

// AbsentLabels returns count absent labels.
func AbsentLabels(count int) []Label {
	return make([]Label, count)
}

// NumberedLabels returns "<prefix> <first>" .. "<prefix> <first+count-1>".
func NumberedLabels(prefix string, first int, count int) []Label {
	labels := make([]Label, count)

	for i := range count {
		labels[i] = Namef("%s %d", prefix, first+i)
	}

	return labels
}

//
// tap points
//

var tapLabels = [...]string{"IN", "IN+M", "<EQ", "<EQ+M", "EQ>", "EQ>+M", "PRE", "PRE+M", "POST"}

// TapLabel returns the label of a tap point index.
func TapLabel(tap int) (string, bool) {
	if tap < 0 || tap >= len(tapLabels) {
		return "", false
	}

	return tapLabels[tap], true
}

// WithTap renders "<name> (<tap>)". Both parts must be present.
func WithTap(name Label, tap Value) Label {
	index, ok := tap.Int()
	if !ok || !name.Valid() {
		return Label{}
	}

	tapLabel, ok := TapLabel(index)
	if !ok {
		return Label{}
	}

	return Namef("%s (%s)", name.text, tapLabel)
}

//
// custom names
//

// ResolveName reads a custom name and falls back when it is unset or empty.
func ResolveName(ctx context.Context, dispatcher Dispatcher, node Node, fallback string) (string, error) {
	values, err := dispatcher.Query(ctx, node)
	if err != nil {
		return "", err
	}

	return NameOr(values[0], fallback), nil
}

// NameOr normalizes a name reading: absent, non-string and empty all mean fallback.
func NameOr(value Value, fallback string) string {
	name, ok := value.Str()
	if !ok || name == "" {
		return fallback
	}

	return name
}
