package harvest

import (
	"encoding/json"
)

// Link represents a hypermedia link embedded in a response body.
type Link struct {
	Href  string `json:"href"            yaml:"href"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Links is a map of relation name to link.
type Links map[string]Link

// Relations are the relations a service advertised in its handshake headers.
type Relations struct {
	Links     map[string]string `json:"links"     yaml:"links"`
	Templates map[string]string `json:"templates" yaml:"templates"`
}

// Category groups concepts.
type Category struct {
	ID     int     `json:"id"               yaml:"id"`
	Name   string  `json:"name"             yaml:"name"`
	Order  float64 `json:"order"            yaml:"order"`
	Parent *int    `json:"parent,omitempty" yaml:"parent,omitempty"`
	Links  Links   `json:"_links,omitempty" yaml:"_links,omitempty"`
}

// Field is a single data field exposed by the service.
type Field struct {
	ID          int    `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	AppName     string `json:"app_name,omitempty"    yaml:"app_name,omitempty"`
	ModelName   string `json:"model_name,omitempty"  yaml:"model_name,omitempty"`
	FieldName   string `json:"field_name,omitempty"  yaml:"field_name,omitempty"`
	Type        string `json:"type,omitempty"        yaml:"type,omitempty"`
	SimpleType  string `json:"simple_type,omitempty" yaml:"simple_type,omitempty"`
	Unit        string `json:"unit,omitempty"        yaml:"unit,omitempty"`
	Enumerable  bool   `json:"enumerable"            yaml:"enumerable"`
	Searchable  bool   `json:"searchable"            yaml:"searchable"`
	Nullable    bool   `json:"nullable"              yaml:"nullable"`
	Links       Links  `json:"_links,omitempty"      yaml:"_links,omitempty"`
}

// Concept is a user-facing grouping of one or more fields.
type Concept struct {
	ID          int       `json:"id"                    yaml:"id"`
	Name        string    `json:"name"                  yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Category    *Category `json:"category,omitempty"    yaml:"category,omitempty"`
	Order       float64   `json:"order"                 yaml:"order"`
	Queryable   bool      `json:"queryable"             yaml:"queryable"`
	Viewable    bool      `json:"viewable"              yaml:"viewable"`
	Sortable    bool      `json:"sortable"              yaml:"sortable"`
	Formatter   string    `json:"formatter,omitempty"   yaml:"formatter,omitempty"`
	Fields      []Field   `json:"fields,omitempty"      yaml:"fields,omitempty"`
	Links       Links     `json:"_links,omitempty"      yaml:"_links,omitempty"`
}

// Context is the filter tree applied to a query.
type Context struct {
	ID          int             `json:"id"                    yaml:"id"`
	Name        string          `json:"name,omitempty"        yaml:"name,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	JSON        json.RawMessage `json:"json,omitempty"        yaml:"-"`
	Session     bool            `json:"session"               yaml:"session"`
	Template    bool            `json:"template"              yaml:"template"`
	Default     bool            `json:"default"               yaml:"default"`
	Count       *int            `json:"count,omitempty"       yaml:"count,omitempty"`
	Created     string          `json:"created,omitempty"     yaml:"created,omitempty"`
	Modified    string          `json:"modified,omitempty"    yaml:"modified,omitempty"`
	Links       Links           `json:"_links,omitempty"      yaml:"_links,omitempty"`
}

// View is the column and ordering selection applied to a query.
type View struct {
	ID          int             `json:"id"                    yaml:"id"`
	Name        string          `json:"name,omitempty"        yaml:"name,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	JSON        json.RawMessage `json:"json,omitempty"        yaml:"-"`
	Session     bool            `json:"session"               yaml:"session"`
	Template    bool            `json:"template"              yaml:"template"`
	Default     bool            `json:"default"               yaml:"default"`
	Created     string          `json:"created,omitempty"     yaml:"created,omitempty"`
	Modified    string          `json:"modified,omitempty"    yaml:"modified,omitempty"`
	Links       Links           `json:"_links,omitempty"      yaml:"_links,omitempty"`
}

// Query is a saved pairing of a context and a view.
type Query struct {
	ID            int             `json:"id"                       yaml:"id"`
	Name          string          `json:"name,omitempty"           yaml:"name,omitempty"`
	Description   string          `json:"description,omitempty"    yaml:"description,omitempty"`
	ContextJSON   json.RawMessage `json:"context_json,omitempty"   yaml:"-"`
	ViewJSON      json.RawMessage `json:"view_json,omitempty"      yaml:"-"`
	Session       bool            `json:"session"                  yaml:"session"`
	Public        bool            `json:"public"                   yaml:"public"`
	DistinctCount *int            `json:"distinct_count,omitempty" yaml:"distinct_count,omitempty"`
	RecordCount   *int            `json:"record_count,omitempty"   yaml:"record_count,omitempty"`
	Created       string          `json:"created,omitempty"        yaml:"created,omitempty"`
	Modified      string          `json:"modified,omitempty"       yaml:"modified,omitempty"`
	Links         Links           `json:"_links,omitempty"         yaml:"_links,omitempty"`
}

// Preview is one page of the rows matched by the session's context and view.
type Preview struct {
	Keys           []json.RawMessage `json:"keys,omitempty"             yaml:"-"`
	Items          []PreviewItem     `json:"items"                      yaml:"items"`
	ItemName       string            `json:"item_name,omitempty"        yaml:"item_name,omitempty"`
	ItemNamePlural string            `json:"item_name_plural,omitempty" yaml:"item_name_plural,omitempty"`
	Limit          int               `json:"limit"                      yaml:"limit"`
	Page           int               `json:"page"                       yaml:"page"`
	Links          Links             `json:"_links,omitempty"           yaml:"_links,omitempty"`
}

// PreviewItem is a single row of a preview.
type PreviewItem struct {
	PK     interface{}   `json:"pk"     yaml:"pk"`
	Values []interface{} `json:"values" yaml:"values"`
}

// StatsCount is the number of records of one model.
type StatsCount struct {
	AppName           string `json:"app_name"                      yaml:"app_name"`
	ModelName         string `json:"model_name"                    yaml:"model_name"`
	VerboseName       string `json:"verbose_name,omitempty"        yaml:"verbose_name,omitempty"`
	VerboseNamePlural string `json:"verbose_name_plural,omitempty" yaml:"verbose_name_plural,omitempty"`
	Count             int    `json:"count"                         yaml:"count"`
}

// Ping status values.
const (
	PingStatusOK      = "ok"
	PingStatusTimeout = "timeout"
)

// PingStatus is the body returned by the ping relation.
type PingStatus struct {
	Status   string `json:"status"             yaml:"status"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}
