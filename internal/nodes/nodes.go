package nodes

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Localized is a bilingual label (Chinese / English).
type Localized struct {
	Zh string `json:"zh"`
	En string `json:"en"`
}

// Display joins both languages the way the report shows them: "Zh (En)",
// falling back to whichever side is present.
func (l Localized) Display() string {
	switch {
	case l.Zh != "" && l.En != "":
		return fmt.Sprintf("%s (%s)", l.Zh, l.En)
	case l.Zh != "":
		return l.Zh
	default:
		return l.En
	}
}

// Size is a byte-size hint in MB. Node files carry it either as a bare
// number or as an object with a "value" field.
type Size struct {
	Value int64
}

func (s *Size) UnmarshalJSON(data []byte) error {
	var value int64
	if err := json.Unmarshal(data, &value); err == nil {
		if value < 0 {
			return fmt.Errorf("size cannot be negative: %d", value)
		}
		s.Value = value
		return nil
	}

	var obj struct {
		Value *int64 `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("parse size: %w", err)
	}
	if obj.Value == nil {
		return fmt.Errorf("size.value field not found")
	}
	if *obj.Value < 0 {
		return fmt.Errorf("size cannot be negative: %d", *obj.Value)
	}
	s.Value = *obj.Value
	return nil
}

func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

// GeoInfo is optional location metadata; informational only.
type GeoInfo struct {
	CountryCode string  `json:"countryCode"`
	Region      *string `json:"region"`
	City        *string `json:"city"`
}

// Node is one endpoint under test. Immutable for the duration of a run.
// Size and Threads are hints for other tooling; the checks ignore them.
type Node struct {
	ID      string    `json:"id"`
	Name    Localized `json:"name"`
	Isp     Localized `json:"isp"`
	URL     string    `json:"url"`
	Type    string    `json:"type"`
	Size    Size      `json:"size"`
	Threads uint8     `json:"threads"`
	GeoInfo *GeoInfo  `json:"geoInfo,omitempty"`
}

func (n Node) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ID, validation.Required),
		validation.Field(&n.Name, validation.By(localizedRequired)),
		validation.Field(&n.Isp, validation.By(localizedRequired)),
		validation.Field(&n.URL, validation.Required, is.URL, validation.By(httpScheme)),
		validation.Field(&n.Type, validation.Required),
	)
}

func localizedRequired(value interface{}) error {
	l, ok := value.(Localized)
	if !ok {
		return fmt.Errorf("must be a localized label")
	}
	if l.Zh == "" && l.En == "" {
		return fmt.Errorf("at least one of zh or en must be set")
	}
	return nil
}

func httpScheme(value interface{}) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("must start with http:// or https://")
	}
	return nil
}

// Load reads the node list file: a JSON object keyed by node ID. The slice
// comes back sorted by ID so runs are deterministic. Any read, parse or
// validation failure is returned to become a fatal startup error.
func Load(path string) ([]Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read node list: %w", err)
	}

	var raw map[string]Node
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse node list: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("node list is empty")
	}

	list := make([]Node, 0, len(raw))
	for id, n := range raw {
		if n.ID == "" {
			n.ID = id
		} else if n.ID != id {
			return nil, fmt.Errorf("node id mismatch: map key %s != node id %s", id, n.ID)
		}
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("invalid node %s: %w", id, err)
		}
		list = append(list, n)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Filter returns the nodes matching the given IDs, preserving order.
// Unknown IDs are an error so typos fail loudly.
func Filter(list []Node, ids []string) ([]Node, error) {
	byID := make(map[string]Node, len(list))
	for _, n := range list {
		byID[n.ID] = n
	}
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		n, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown node id: %s", id)
		}
		out = append(out, n)
	}
	return out, nil
}
