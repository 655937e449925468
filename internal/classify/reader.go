package classify

import (
	"context"

	"github.com/NaiHeeeee/repkg-gui/internal/catalog"
)

// DescriptorReader resolves ratings by re-reading the bundle's sidecar
// descriptor. Keys are bundle directory paths.
func DescriptorReader() RatingReader {
	return RatingReaderFunc(func(ctx context.Context, key string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return catalog.ReadDescriptor(key).ContentRating, nil
	})
}
