package render

import (
	"encoding/json"
	"strconv"
	"strings"
	"text/template"

	"github.com/specialistvlad/cslgen/internal/csl"
)

var templateFuncs = template.FuncMap{
	"join":     strings.Join,
	"quote":    strconv.Quote,
	"quoteAll": quoteAll,
	"ident":    csl.Identifier,
	"toJSON":   toJSON,
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strconv.Quote(s)
	}
	return out
}

func toJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
