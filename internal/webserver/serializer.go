package webserver

import (
	"github.com/labstack/echo/v4"
	jsoniter "github.com/json-iterator/go"
)

var jsonApi = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONSerializer swaps echo's default encoding/json for json-iterator.
type JSONSerializer struct{}

func (d *JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsonApi.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (d *JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	return jsonApi.NewDecoder(c.Request().Body).Decode(i)
}
