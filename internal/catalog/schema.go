package catalog

type LayerKind string

const (
	LayerShape LayerKind = "shape"
	LayerImage LayerKind = "image"
	LayerText  LayerKind = "text"
)

// Layer describes a single named region of a template. An empty layer is a
// decorative shape, {image_url} is an image layer and {text, color} is a
// text layer with a hex or rgb(r, g, b) color.
type Layer map[string]string

func (l Layer) Kind() LayerKind {
	if _, ok := l["image_url"]; ok {
		return LayerImage
	}
	if _, ok := l["text"]; ok {
		return LayerText
	}
	return LayerShape
}

// Schema maps layer names to their descriptors.
type Schema map[string]Layer

func (s Schema) clone() Schema {
	out := make(Schema, len(s))
	for name, layer := range s {
		cp := make(Layer, len(layer))
		for k, v := range layer {
			cp[k] = v
		}
		out[name] = cp
	}
	return out
}

func shape() Layer { return Layer{} }

func image() Layer { return Layer{"image_url": ""} }

func text(value, color string) Layer { return Layer{"text": value, "color": color} }

var schemaV0 = Schema{
	"image_url1": image(),
	"image_url2": image(),
	"image_url3": image(),
	"image_url4": image(),
	"text1":      text("", "#000000"),
	"text2":      text("", "#000000"),
	"text3":      text("", "#000000"),
	"text4":      text("", "#000000"),
}

var schemaV1 = Schema{
	"image-1":    image(),
	"bg-website": shape(),
	"website":    text("www.house4you.com", "#FFFFFF"),
	"shape-bg":   shape(),
	"modern":     text("MODERN", "rgb(171, 102, 49)"),
	"home":       text("HOME", "rgb(59, 59, 59)"),
	"for sale":   text("FOR SALE", "rgb(59, 59, 59)"),
	"start from": text("START FROM", "rgb(59, 59, 59)"),
	"price":      text("$0", "rgb(59, 59, 59)"),
	"button-cta": text("BUY NOW", "rgb(228, 228, 222)"),
}

var schemaV2 = Schema{
	"image-top":  image(),
	"photo-1":    image(),
	"photo-2":    image(),
	"photo-3":    image(),
	"shape-1":    shape(),
	"title-1":    text("THE BEST HOME", "rgb(239, 233, 226)"),
	"title-2":    text("FOR SALE", "rgb(239, 233, 226)"),
	"button-cta": text("I WANT", "rgb(255, 255, 255)"),
	"info":       text("For more info, contact us", "rgb(126, 103, 76)"),
	"website":    text("www.housesforyou.com", "rgb(0, 0, 0)"),
}
