package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// Catalog maps each locale to its decoded Bundle. It is immutable after Load.
type Catalog struct {
	bundles map[Locale]Bundle
}

// Load decodes the compiled-in locale files.
func Load() (*Catalog, error) {
	return LoadFS(embedded, "locales")
}

// MustLoad is Load that panics on error.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFS decodes "<dir>/<locale>.yaml" for every supported locale and checks
// that all bundles have the same shape as the primary one.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	c := &Catalog{bundles: make(map[Locale]Bundle, len(Locales))}
	for _, l := range Locales {
		data, err := fs.ReadFile(fsys, dir+"/"+string(l)+".yaml")
		if err != nil {
			return nil, errors.Join(fmt.Errorf("%w: %s", ErrMissingLocale, l), err)
		}
		b, err := decode(data)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("%w: %s", ErrInvalidBundle, l), err)
		}
		c.bundles[l] = b
	}

	primary := c.bundles[Default]
	for _, l := range Locales {
		if err := sameShape(primary, c.bundles[l]); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrShapeMismatch, l, err)
		}
	}
	return c, nil
}

// Bundle returns a copy of the bundle for l, falling back to the default
// locale for unknown values.
func (c *Catalog) Bundle(l Locale) Bundle {
	b, ok := c.bundles[l]
	if !ok {
		b = c.bundles[Default]
	}
	return b.clone()
}

func decode(data []byte) (Bundle, error) {
	var b Bundle
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return Bundle{}, err
	}
	if b.Nav.Home == "" || b.Hero.Title == "" || b.Footer.Rights == "" {
		return Bundle{}, errors.New("required strings are empty")
	}
	return b, nil
}

func sameShape(a, b Bundle) error {
	switch {
	case len(a.Services.Items) != len(b.Services.Items):
		return errors.New("services")
	case len(a.Products.Items) != len(b.Products.Items):
		return errors.New("products")
	case len(a.FAQ.Items) != len(b.FAQ.Items):
		return errors.New("faq")
	case len(a.HistoryPage.Paragraphs) != len(b.HistoryPage.Paragraphs):
		return errors.New("history paragraphs")
	}
	return nil
}
