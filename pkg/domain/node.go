package domain

import "fmt"

type NodePropertyType string

const (
	NodePropertyType_String   NodePropertyType = "string"
	NodePropertyType_Text     NodePropertyType = "text"
	NodePropertyType_TagInput NodePropertyType = "tag_input"
	NodePropertyType_Integer  NodePropertyType = "integer"
	NodePropertyType_Number   NodePropertyType = "number"
	NodePropertyType_Boolean  NodePropertyType = "boolean"
	NodePropertyType_Array    NodePropertyType = "array"
	NodePropertyType_Map      NodePropertyType = "map"
	NodePropertyType_Date     NodePropertyType = "date"
	NodePropertyType_File     NodePropertyType = "file"
	NodePropertyType_Endpoint NodePropertyType = "endpoint"
	NodePropertyType_Locator  NodePropertyType = "resource_locator"
)

type NodeProperty struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Required    bool             `json:"required"`
	Hidden      bool             `json:"hidden"`
	Advanced    bool             `json:"advanced"`
	Type        NodePropertyType `json:"type"`
	IsSecret    bool             `json:"is_secret,omitempty"`

	Placeholder string `json:"placeholder,omitempty"`
	Help        string `json:"help,omitempty"`

	Options      []NodePropertyOption `json:"options,omitempty"`
	MultiOptions []NodePropertyOption `json:"multi_options,omitempty"`

	NumberOpts *NumberPropertyOptions `json:"number_opts,omitempty"`
	ArrayOpts  *ArrayPropertyOptions  `json:"array_opts,omitempty"`

	DependsOn *DependsOn `json:"depends_on,omitempty"`
	ShowIf    *ShowIf    `json:"show_if,omitempty"`

	Peekable     bool                    `json:"peekable"`
	PeekableType IntegrationPeekableType `json:"peekable_type,omitempty"`

	EndpointPropertyOpts *EndpointPropertyOptions `json:"endpoint_property_opts,omitempty"`
}

type NodePropertyOption struct {
	Label       string `json:"label"`
	Value       any    `json:"value"`
	Description string `json:"description"`
}

type DependsOn struct {
	PropertyKey string `json:"property_key"`
	Value       any    `json:"value"`
}

type ShowIf struct {
	PropertyKey string `json:"property_key"`
	Values      []any  `json:"values"`
}

type NumberPropertyOptions struct {
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
	Default float64 `json:"default,omitempty"`
}

type ArrayPropertyOptions struct {
	ItemType       NodePropertyType `json:"item_type"`
	ItemProperties []NodeProperty   `json:"item_properties,omitempty"`
}

type EndpointPropertyOptions struct {
	AllowedMethods []string `json:"allowed_methods,omitempty"`
}

// ResourceLocator is the dual-mode reference fields bind into: either an id
// picked from a peekable list or one entered manually.
type ResourceLocator struct {
	Mode string `json:"mode"`
	ID   string `json:"id"`
}

const (
	ResourceLocatorMode_Selected = "selected"
	ResourceLocatorMode_Manual   = "manual"
)

func (r ResourceLocator) Resolve() (string, error) {
	switch r.Mode {
	case ResourceLocatorMode_Selected, ResourceLocatorMode_Manual, "":
		if r.ID == "" {
			return "", fmt.Errorf("resource locator has no id")
		}

		return r.ID, nil
	default:
		return "", fmt.Errorf("unknown resource locator mode %q", r.Mode)
	}
}
