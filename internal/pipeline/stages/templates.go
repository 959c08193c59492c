package stages

import (
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"ordinal-complexity/internal/opencv/safe"
	"ordinal-complexity/internal/pipeline"
)

// LoadTemplate looks for dir/name with each extension in turn and reads the
// first match as grayscale. It returns nil with no error when dir or name is
// empty or nothing matches; the mask stage then keeps the whole image.
func LoadTemplate(dir, name string, extensions []string, log pipeline.Logger) (*safe.Mat, string, error) {
	if dir == "" || name == "" {
		return nil, "", nil
	}

	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		mat := gocv.IMRead(path, gocv.IMReadGrayScale)
		if mat.Empty() {
			mat.Close()
			return nil, path, fmt.Errorf("failed to decode template %s", path)
		}

		tmpl, err := safe.Adopt(mat, "template")
		if err != nil {
			return nil, path, err
		}

		log.Info("TemplateLoader", "template loaded", map[string]interface{}{
			"path":   path,
			"width":  tmpl.Cols(),
			"height": tmpl.Rows(),
		})
		return tmpl, path, nil
	}

	log.Warning("TemplateLoader", "template not found, counting the whole image", map[string]interface{}{
		"dir":        dir,
		"name":       name,
		"extensions": extensions,
	})
	return nil, "", nil
}
