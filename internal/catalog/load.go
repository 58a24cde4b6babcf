package catalog

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// productJSON mirrors the catalog file schema.
type productJSON struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Brand       string      `json:"brand"`
	Price       json.Number `json:"price"`
	Rating      float64     `json:"rating"`
	Description string      `json:"description"`
	InStock     bool        `json:"in_stock"`
	ImageURL    string      `json:"image_url,omitempty"`
}

// Load reads one or more catalog shard files, parses them concurrently, and
// builds a Store from the merged products in argument order. Files ending in
// .gz are decompressed on the fly. Any missing or malformed shard fails the
// whole load: the service must not start with a partial catalog.
func Load(ctx context.Context, paths ...string) (*Store, error) {
	if len(paths) == 0 {
		return nil, errors.New("no catalog files given")
	}

	shards := make([][]Product, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			products, err := loadFile(path)
			if err != nil {
				return errors.Wrapf(err, "load %s", path)
			}
			shards[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []Product
	for _, shard := range shards {
		merged = append(merged, shard...)
	}
	return New(merged)
}

// LoadBytes builds a Store from a single in-memory JSON document.
func LoadBytes(data []byte) (*Store, error) {
	products, err := decodeProducts(data)
	if err != nil {
		return nil, err
	}
	return New(products)
}

func loadFile(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip")
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeProducts(data)
}

func decodeProducts(data []byte) ([]Product, error) {
	var raw []productJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse catalog JSON")
	}

	products := make([]Product, len(raw))
	for i, p := range raw {
		price, err := parsePrice(p.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "product %q: price", p.ID)
		}
		products[i] = Product{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Brand:       p.Brand,
			Price:       price,
			Rating:      p.Rating,
			Description: p.Description,
			InStock:     p.InStock,
			ImageURL:    p.ImageURL,
		}
	}
	return products, nil
}

func parsePrice(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
