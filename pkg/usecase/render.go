package usecase

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

//go:embed templates/creative.html.tmpl
var creativeTemplateText string

// creativeTemplate is executed with text/template so the composition binding and the
// click tag are inserted verbatim, without HTML or JS escaping.
var creativeTemplate = template.Must(template.New("creative").Parse(creativeTemplateText))

type creativeView struct {
	Name               string
	Width              int
	Height             int
	CompositionBinding string
	ClickTag           string
}

// Render produces the bootstrap document for creative. The output depends only on the
// creative's name, size and composition binding plus clickTag.
func Render(creative model.Creative, clickTag string) (string, error) {
	var sb strings.Builder
	if err := creativeTemplate.Execute(&sb, creativeView{
		Name:               creative.Name,
		Width:              creative.Width,
		Height:             creative.Height,
		CompositionBinding: creative.CompositionBinding,
		ClickTag:           clickTag,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render creative template", goerr.V("name", creative.Name))
	}
	return sb.String(), nil
}
