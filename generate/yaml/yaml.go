/*
Package yaml provides methods to read and write generate.Catalog
specifications from YAML documents:

	items: [bread, milk, eggs]
	base:
	  bread: 0.4
	  milk: 0.3
	conditionals:
	  bread:
	    milk: 0.6
	max_quantity: 12
*/
package yaml

import (
	"fmt"
	"io"
	"os"

	"github.com/JosephHardy91/itemSets/generate"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadCatalog takes a slice of bytes with a catalog specification in YAML and
returns the catalog parsed from it or an error if it cannot be parsed or
does not validate.
*/
func ReadCatalog(data []byte) (*generate.Catalog, error) {
	c := &generate.Catalog{}
	err := yaml.UnmarshalStrict(data, c)
	if err != nil {
		return nil, fmt.Errorf("parsing yml catalog: %w", err)
	}
	if err = c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

/*
ReadCatalogFromFile takes a filepath string, reads its contents and uses
ReadCatalog to parse it and return the catalog or an error.
*/
func ReadCatalogFromFile(filepath string) (*generate.Catalog, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading catalog yml file %s: %w", filepath, err)
	}
	c, err := ReadCatalog(data)
	if err != nil {
		err = fmt.Errorf("parsing catalog yml file %s: %w", filepath, err)
	}
	return c, err
}

// WriteCatalog writes the catalog to w as YAML.
func WriteCatalog(w io.Writer, c *generate.Catalog) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	_, err = w.Write(data)
	return err
}
