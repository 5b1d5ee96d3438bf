// Package docs builds the descriptive Swagger 2.0 document served at /api-docs.
package docs

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

type Document struct {
	Swagger  string              `json:"swagger" yaml:"swagger"`
	Info     Info                `json:"info" yaml:"info"`
	Schemes  []string            `json:"schemes,omitempty" yaml:"schemes,omitempty"`
	Consumes []string            `json:"consumes" yaml:"consumes"`
	Produces []string            `json:"produces" yaml:"produces"`
	Paths    map[string]PathItem `json:"paths" yaml:"paths"`
}

type Info struct {
	Title       string  `json:"title" yaml:"title"`
	Version     string  `json:"version" yaml:"version"`
	Description string  `json:"description" yaml:"description"`
	Contact     Contact `json:"contact" yaml:"contact"`
}

type Contact struct {
	Name string `json:"name" yaml:"name"`
}

// PathItem maps a lower case HTTP method to its operation.
type PathItem map[string]Operation

type Operation struct {
	Description string              `json:"description" yaml:"description"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"`
	Required bool    `json:"required" yaml:"required"`
	Schema   *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

type Schema struct {
	Type       string             `json:"type" yaml:"type"`
	Required   []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Minimum    *int               `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum    *int               `json:"maximum,omitempty" yaml:"maximum,omitempty"`
}

type Response struct {
	Description string `json:"description" yaml:"description"`
}

// Build describes the estimate endpoints for the given room bounds.
func Build(version string, minRooms, maxRooms int) *Document {
	count := func() *Schema {
		lo, hi := minRooms, maxRooms
		return &Schema{Type: "integer", Minimum: &lo, Maximum: &hi}
	}
	body := Parameter{
		Name:     "request",
		In:       "body",
		Required: true,
		Schema: &Schema{
			Type:     "object",
			Required: []string{"location", "houseType", "bedrooms", "bathrooms", "toilets"},
			Properties: map[string]*Schema{
				"location":  {Type: "string"},
				"houseType": {Type: "string"},
				"bedrooms":  count(),
				"bathrooms": count(),
				"toilets":   count(),
			},
		},
	}
	responses := map[string]Response{
		"200": {Description: "A successful response"},
		"400": {Description: "An invalid request"},
		"401": {Description: "The prediction service could not be reached"},
	}

	return &Document{
		Swagger: "2.0",
		Info: Info{
			Title:       "Union Price API",
			Version:     version,
			Description: "Union Price API information",
			Contact:     Contact{Name: "John Odia, Eugenia Ikwuegbu"},
		},
		Consumes: []string{"application/json"},
		Produces: []string{"application/json"},
		Paths: map[string]PathItem{
			"/estimated-rent": {
				"post": {
					Description: "Used to request estimated rent price for a given set of input parameters",
					Parameters:  []Parameter{body},
					Responses:   responses,
				},
			},
			"/estimated-price": {
				"post": {
					Description: "Used to request estimated price for purchasing a house according to a given set of input parameters",
					Parameters:  []Parameter{body},
					Responses:   responses,
				},
			},
		},
	}
}

func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
