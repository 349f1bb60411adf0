package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'styledom.style'.
func tracer() tracing.Trace {
	return tracing.Select("styledom.style")
}

// Property is a raw value for a CSS property. For example, with
//
//     color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a convenient
// hook for helpers and conversions.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritance-type "initial".
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritance-type "inherit".
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a single style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- CSS Property Groups ---------------------------------------------------

// PropertyGroup is a collection of properties sharing a common topic.
// CSS knows a whole lot of properties; we split them up into
// organisatorial groups. Property groups of ancestor nodes may be chained
// via the Parent link, which is how cascading lookups walk upwards.
type PropertyGroup struct {
	name      string
	Parent    *PropertyGroup
	propsDict map[string]Property
}

// NewPropertyGroup creates a new empty property group, given its name.
func NewPropertyGroup(groupname string) *PropertyGroup {
	pg := &PropertyGroup{}
	pg.name = groupname
	return pg
}

// Name returns the name of the property group. Property groups may not be
// renamed after construction.
func (pg *PropertyGroup) Name() string {
	return pg.name
}

// Stringer for property groups; used for debugging.
func (pg *PropertyGroup) String() string {
	s := "[" + pg.name + "] =\n"
	for k, v := range pg.propsDict {
		s += fmt.Sprintf("  %s = %s\n", k, v)
	}
	return s
}

// Properties returns all properties of a group.
func (pg *PropertyGroup) Properties() []KeyValue {
	i := 0
	r := make([]KeyValue, len(pg.propsDict))
	for k, v := range pg.propsDict {
		r[i] = KeyValue{k, v}
		i++
	}
	return r
}

// IsSet is a predicate wether a property is set within this group.
func (pg *PropertyGroup) IsSet(key string) bool {
	if pg == nil || pg.propsDict == nil {
		return false
	}
	v, ok := pg.propsDict[key]
	return ok && !v.IsEmpty()
}

// Get a property's value within this group. No cascading is performed.
func (pg *PropertyGroup) Get(key string) (Property, bool) {
	if pg == nil || pg.propsDict == nil {
		return NullStyle, false
	}
	p, ok := pg.propsDict[key]
	return p, ok
}

// Set a property's value. Overwrites an existing value, if present.
//
// Style property values are always converted to lower case.
func (pg *PropertyGroup) Set(key string, p Property) {
	p = Property(strings.ToLower(string(p)))
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	pg.propsDict[key] = p
}

// Add a property's value. Does not overwrite an existing value, i.e. does
// nothing if a value is already set.
func (pg *PropertyGroup) Add(key string, p Property) {
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	if _, exists := pg.propsDict[key]; !exists {
		pg.propsDict[key] = p
	}
}

// Cascade finds the closest group in the ancestor chain which has the
// given property-key set, starting with (and including) this group.
// Returns nil if no group in the chain contains the key; absence is a
// regular condition, not an error.
func (pg *PropertyGroup) Cascade(key string) *PropertyGroup {
	it := pg
	for it != nil && !it.IsSet(key) {
		it = it.Parent
	}
	return it
}

// ForkOnProperty creates a new PropertyGroup, pre-filled with a given
// property. If cascade is true, the new group links to the closest
// ancestor group containing this property, unless the values are equal
// anyway (then the receiver is returned unchanged).
func (pg *PropertyGroup) ForkOnProperty(key string, p Property, cascade bool) (*PropertyGroup, bool) {
	var ancestor *PropertyGroup
	if cascade {
		ancestor = pg.Cascade(key)
		if ancestor != nil {
			if p2, _ := ancestor.Get(key); p2 == p {
				return pg, false
			}
		}
	}
	npg := NewPropertyGroup(pg.name)
	npg.Parent = ancestor
	npg.Set(key, p)
	return npg, true
}

// Symbolic names for string literals, denoting PropertyGroups.
const (
	PGMargins   = "Margins"
	PGPadding   = "Padding"
	PGBorder    = "Border"
	PGDimension = "Dimension"
	PGDisplay   = "Display"
	PGColor     = "Color"
	PGText      = "Text"
	PGX         = "X"
)

// GroupNameFromPropertyKey returns the style property group name for a
// style property. Example:
//
//     GroupNameFromPropertyKey("margin-top") => "Margins"
//
// Unknown style property keys will return a group name of "X".
func GroupNameFromPropertyKey(key string) string {
	groupname, found := groupNameFromPropertyKey[key]
	if !found {
		groupname = PGX
	}
	return groupname
}

var groupNameFromPropertyKey = map[string]string{
	"margin-top":          PGMargins,
	"margin-left":         PGMargins,
	"margin-right":        PGMargins,
	"margin-bottom":       PGMargins,
	"padding-top":         PGPadding,
	"padding-left":        PGPadding,
	"padding-right":       PGPadding,
	"padding-bottom":      PGPadding,
	"border-top-color":    PGBorder,
	"border-left-color":   PGBorder,
	"border-right-color":  PGBorder,
	"border-bottom-color": PGBorder,
	"border-top-width":    PGBorder,
	"border-left-width":   PGBorder,
	"border-right-width":  PGBorder,
	"border-bottom-width": PGBorder,
	"border-top-style":    PGBorder,
	"border-left-style":   PGBorder,
	"border-right-style":  PGBorder,
	"border-bottom-style": PGBorder,
	"width":               PGDimension,
	"height":              PGDimension,
	"min-width":           PGDimension,
	"min-height":          PGDimension,
	"max-width":           PGDimension,
	"max-height":          PGDimension,
	"display":             PGDisplay,
	"float":               PGDisplay,
	"visibility":          PGDisplay,
	"position":            PGDisplay,
	"color":               PGColor,
	"background-color":    PGColor,
	"direction":           PGText,
	"white-space":         PGText,
	"word-spacing":        PGText,
	"letter-spacing":      PGText,
	"word-break":          PGText,
	"word-wrap":           PGText,
}

// IsCascading returns wether the standard behaviour for a property is to
// be inherited, i.e. wether a lookup of its value should cascade to
// ancestor nodes.
func IsCascading(key string) bool {
	if strings.HasPrefix(key, "list-style") {
		return true
	}
	switch key {
	case "color", "cursor", "direction", "position":
		return true
	case "letter-spacing", "line-height", "quotes", "visibility", "white-space":
		return true
	case "word-spacing", "word-break", "word-wrap":
		return true
	}
	return false
}

// --- Property Map ----------------------------------------------------------

// PropertyMap holds CSS properties for a single node. nil is a legal
// (empty) property map. A property map is what a style resolver computes
// per node and deposits in the node's style slot; it contains zero or
// more property groups, and property maps of different nodes may share
// property groups (see PropertyGroup.ForkOnProperty).
type PropertyMap struct {
	m map[string]*PropertyGroup // keyed by group name; opaque for clients
}

// NewPropertyMap returns a new empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{}
}

func (pmap *PropertyMap) String() string {
	s := "Property Map = {\n"
	for _, v := range pmap.m {
		s += v.String()
	}
	s += "}"
	return s
}

// Size returns the number of property groups.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.m)
}

// Group returns the property group for a group name, or nil.
func (pmap *PropertyMap) Group(groupname string) *PropertyGroup {
	if pmap == nil {
		return nil
	}
	return pmap.m[groupname]
}

// Property returns a style property value, together with an indicator
// wether it has been found in the map. No cascading is performed.
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	group := pmap.Group(GroupNameFromPropertyKey(key))
	if group == nil {
		return NullStyle, false
	}
	return group.Get(key)
}

// GetPropertyValue returns the property value for a given key, cascading
// along the group's ancestor chain if the property is inherited. Absence
// is signalled with NullStyle.
func (pmap *PropertyMap) GetPropertyValue(key string) Property {
	p, ok := pmap.Property(key)
	if ok && p != "inherit" {
		return p
	}
	if p == "inherit" || IsCascading(key) {
		groupname := GroupNameFromPropertyKey(key)
		tracer().P("key", key).Debugf("style: cascading lookup in group %s", groupname)
		group := pmap.Group(groupname).Cascade(key)
		if group == nil {
			return NullStyle
		}
		p, _ = group.Get(key)
		return p
	}
	return NullStyle
}

// Add adds a property to this property map, e.g.
//
//     pmap.Add("margin-top", "2em")
//
func (pmap *PropertyMap) Add(key string, value Property) {
	if pmap == nil {
		return
	}
	if pmap.m == nil {
		pmap.m = make(map[string]*PropertyGroup)
	}
	groupname := GroupNameFromPropertyKey(key)
	group, found := pmap.m[groupname]
	if !found {
		group = NewPropertyGroup(groupname)
		pmap.m[groupname] = group
	}
	group.Set(key, value)
}

// AddAllFromGroup transfers all style properties from a property group to
// a property map. If overwrite is set, existing style property values
// will be overwritten, otherwise only new values are set.
//
// If the property map does not yet contain a group of this kind, it will
// simply link to this group (instead of copying values).
func (pmap *PropertyMap) AddAllFromGroup(group *PropertyGroup, overwrite bool) *PropertyMap {
	if pmap == nil {
		pmap = NewPropertyMap()
	}
	if pmap.m == nil {
		pmap.m = make(map[string]*PropertyGroup)
	}
	g := pmap.Group(group.name)
	if g == nil {
		pmap.m[group.name] = group
	} else {
		for k, v := range group.propsDict {
			if overwrite {
				g.Set(k, v)
			} else {
				g.Add(k, v)
			}
		}
	}
	return pmap
}
