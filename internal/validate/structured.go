package validate

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Product is the identity data read from one structured Product entity.
type Product struct {
	Name   string
	Brands []string
}

// ExtractProducts decodes one JSON-LD block and returns every Product
// entity found anywhere inside it. ok is false when the block is not valid
// JSON, which callers treat as "no data" for that block.
func ExtractProducts(block string) (products []Product, ok bool) {
	block = strings.TrimSpace(block)
	if !gjson.Valid(block) {
		return nil, false
	}
	return collectProducts(gjson.Parse(block), nil), true
}

func collectProducts(v gjson.Result, out []Product) []Product {
	switch {
	case v.IsObject():
		var typ, name, brand gjson.Result
		v.ForEach(func(key, val gjson.Result) bool {
			switch key.String() {
			case "@type":
				typ = val
			case "name":
				name = val
			case "brand":
				brand = val
			}
			return true
		})
		if isProductType(typ) {
			out = append(out, Product{Name: textValue(name), Brands: brandNames(brand)})
		}
		v.ForEach(func(_, val gjson.Result) bool {
			out = collectProducts(val, out)
			return true
		})
	case v.IsArray():
		v.ForEach(func(_, val gjson.Result) bool {
			out = collectProducts(val, out)
			return true
		})
	}
	return out
}

// isProductType matches "Product" or "Products" as a string or inside an
// array of types, ignoring case and any schema.org prefix.
func isProductType(typ gjson.Result) bool {
	if typ.IsArray() {
		found := false
		typ.ForEach(func(_, t gjson.Result) bool {
			found = isProductType(t)
			return !found
		})
		return found
	}
	if typ.Type != gjson.String {
		return false
	}
	t := strings.ToLower(strings.TrimSpace(typ.String()))
	if i := strings.LastIndexAny(t, "/:"); i >= 0 {
		t = t[i+1:]
	}
	return t == "product" || t == "products"
}

// brandNames reads a brand given as a string, an object with a name, or an
// array of either.
func brandNames(brand gjson.Result) []string {
	var names []string
	switch {
	case brand.IsArray():
		brand.ForEach(func(_, b gjson.Result) bool {
			names = append(names, brandNames(b)...)
			return true
		})
	case brand.IsObject():
		if n := textValue(brand.Get("name")); n != "" {
			names = append(names, n)
		}
	default:
		if n := textValue(brand); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func textValue(v gjson.Result) string {
	if v.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(v.String())
}
