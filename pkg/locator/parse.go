package locator

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// markerDoc mirrors the response document: a root element wrapping repeated
// self-closing marker elements. All attributes arrive as text; numeric ones
// are converted afterwards so a bad number degrades to 0 instead of dropping
// the record.
type markerDoc struct {
	Markers []markerXML `xml:"marker"`
}

type markerXML struct {
	Name     string `xml:"name,attr"`
	Address  string `xml:"address,attr"`
	Phone    string `xml:"phone,attr"`
	Type     string `xml:"type,attr"`
	Lat      string `xml:"lat,attr"`
	Lng      string `xml:"lng,attr"`
	Distance string `xml:"distance,attr"`
}

// ParseMarkers parses a locator response body into providers. Leading garbage
// before the XML declaration (typically PHP warnings) is stripped first. If
// strict decoding fails, the tolerant salvage path is tried before giving up.
func ParseMarkers(raw string) ([]Provider, error) {
	raw = stripLeadingGarbage(raw)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	providers, strictErr := parseStrict(raw)
	if strictErr == nil {
		return providers, nil
	}

	salvaged := SalvageMarkers(raw)
	if len(salvaged) == 0 {
		return nil, eris.Wrap(strictErr, "locator: parse markers")
	}

	providers = make([]Provider, 0, len(salvaged))
	for _, attrs := range salvaged {
		providers = append(providers, providerFromAttrs(attrs))
	}
	return providers, nil
}

func parseStrict(raw string) ([]Provider, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "locator: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var doc markerDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, eris.Wrap(err, "locator: decode xml")
	}

	providers := make([]Provider, 0, len(doc.Markers))
	for _, m := range doc.Markers {
		providers = append(providers, Provider{
			Name:     m.Name,
			Address:  m.Address,
			Phone:    m.Phone,
			Type:     m.Type,
			Lat:      floatOrZero(m.Lat),
			Lng:      floatOrZero(m.Lng),
			Distance: floatOrZero(m.Distance),
		})
	}
	return providers, nil
}

func providerFromAttrs(attrs map[string]string) Provider {
	return Provider{
		Name:     attrs["name"],
		Address:  attrs["address"],
		Phone:    attrs["phone"],
		Type:     attrs["type"],
		Lat:      floatOrZero(attrs["lat"]),
		Lng:      floatOrZero(attrs["lng"]),
		Distance: floatOrZero(attrs["distance"]),
	}
}

// stripLeadingGarbage drops anything before the XML declaration. The endpoint
// emits PHP notices ahead of the document under some conditions.
func stripLeadingGarbage(raw string) string {
	if idx := strings.Index(raw, "<?xml"); idx > 0 {
		return raw[idx:]
	}
	return raw
}

func floatOrZero(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
