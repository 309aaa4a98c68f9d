package fcpxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"aafcanon/internal/canon"
	"aafcanon/internal/timecode"
)

const version = "1.13"

type fcpxmlDoc struct {
	XMLName   xml.Name  `xml:"fcpxml"`
	Version   string    `xml:"version,attr"`
	Resources resources `xml:"resources"`
	Library   library   `xml:"library"`
}

type resources struct {
	Formats []format `xml:"format"`
	Assets  []asset  `xml:"asset"`
}

type format struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr"`
	FrameDuration string `xml:"frameDuration,attr"`
}

type asset struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	Src  string `xml:"src,attr"`
}

type library struct {
	Event eventContainer `xml:"event"`
}

type eventContainer struct {
	Name    string  `xml:"name,attr"`
	Project project `xml:"project"`
}

type project struct {
	Name     string   `xml:"name,attr"`
	Sequence sequence `xml:"sequence"`
}

type sequence struct {
	Format   string `xml:"format,attr"`
	TCStart  string `xml:"tcStart,attr"`
	TCFormat string `xml:"tcFormat,attr"`
	Duration string `xml:"duration,attr"`
	Spine    spine  `xml:"spine"`
}

// spine holds timeline items in canonical order. Marshalling is manual so
// asset-clip and video elements interleave the way the document orders
// them instead of grouping by element name.
type spine struct {
	Items []spineItem
}

type spineItem struct {
	element  string
	Ref      string
	Name     string
	Offset   string
	Duration string
	Params   []param
}

type param struct {
	XMLName   xml.Name   `xml:"param"`
	Name      string     `xml:"name,attr"`
	Value     string     `xml:"value,attr,omitempty"`
	Keyframes []keyframe `xml:"keyframe,omitempty"`
}

type keyframe struct {
	Time  string `xml:"time,attr"`
	Value string `xml:"value,attr"`
}

func (s spine) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	start.Name.Local = "spine"
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, item := range s.Items {
		el := xml.StartElement{Name: xml.Name{Local: item.element}}
		el.Attr = appendAttr(el.Attr, "ref", item.Ref)
		el.Attr = appendAttr(el.Attr, "name", item.Name)
		el.Attr = appendAttr(el.Attr, "offset", item.Offset)
		el.Attr = appendAttr(el.Attr, "duration", item.Duration)
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		for _, p := range item.Params {
			if err := enc.Encode(p); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(el.End()); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func appendAttr(attrs []xml.Attr, name, value string) []xml.Attr {
	if value == "" {
		return attrs
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// Write renders doc as an FCPXML document to w.
func Write(w io.Writer, doc *canon.Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal renders doc as an FCPXML document.
func Marshal(doc *canon.Document) ([]byte, error) {
	rate := timecode.RateFromFPS(doc.Project.EditRateFPS)

	out := fcpxmlDoc{
		Version: version,
		Resources: resources{
			Formats: []format{{
				ID:            "r1",
				Name:          fmt.Sprintf("FFVideoFormat_%s", doc.Project.TCFormat),
				FrameDuration: rate.FrameDuration(),
			}},
		},
	}

	assetIDs := assignAssetIDs(doc, &out.Resources)

	var totalFrames int64
	items := make([]spineItem, 0, len(doc.Timeline.Events))
	for _, ev := range doc.Timeline.Events {
		items = append(items, spineItemFor(ev, rate, assetIDs))
		if end := ev.TimelineStartFrames + ev.LengthFrames; end > totalFrames {
			totalFrames = end
		}
	}

	out.Library = library{Event: eventContainer{
		Name: doc.Timeline.Name,
		Project: project{
			Name: doc.Project.Name,
			Sequence: sequence{
				Format:   "r1",
				TCStart:  rationalSeconds(doc.Timeline.StartTCFrames, rate),
				TCFormat: doc.Project.TCFormat,
				Duration: rationalSeconds(totalFrames, rate),
				Spine:    spine{Items: items},
			},
		},
	}}

	body, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode fcpxml: %w", err)
	}

	result := make([]byte, 0, len(body)+64)
	result = append(result, []byte(xml.Header)...)
	result = append(result, []byte("<!DOCTYPE fcpxml>\n")...)
	result = append(result, body...)
	result = append(result, '\n')
	return result, nil
}

// assignAssetIDs creates one asset per unique source path, ids assigned in
// first-appearance order.
func assignAssetIDs(doc *canon.Document, res *resources) map[string]string {
	ids := make(map[string]string)
	for _, ev := range doc.Timeline.Events {
		if ev.Source == nil || ev.Source.Path == nil {
			continue
		}
		path := *ev.Source.Path
		if _, seen := ids[path]; seen {
			continue
		}
		id := fmt.Sprintf("r%d", len(ids)+2)
		ids[path] = id
		res.Assets = append(res.Assets, asset{ID: id, Name: path, Src: path})
	}
	return ids
}

func spineItemFor(ev canon.Event, rate timecode.Rate, assetIDs map[string]string) spineItem {
	item := spineItem{
		Offset:   rationalSeconds(ev.TimelineStartFrames, rate),
		Duration: rationalSeconds(ev.LengthFrames, rate),
		Params:   effectParams(ev.Effect),
	}

	if ev.Source != nil && ev.Source.Path != nil {
		item.element = "asset-clip"
		item.Ref = assetIDs[*ev.Source.Path]
		item.Name = *ev.Source.Path
		if ev.Effect.Name != canon.EffectNone {
			item.Name = ev.Effect.Name
		}
		return item
	}

	// Effect-on-filler and unresolved-media events become placeholder
	// video items so timing is preserved without guessing at media.
	item.element = "video"
	item.Name = ev.Effect.Name
	return item
}

func effectParams(fx canon.Effect) []param {
	if fx.Name == canon.EffectNone {
		return nil
	}

	names := make([]string, 0, len(fx.Parameters))
	for name := range fx.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]param, 0, len(names)+len(fx.Keyframes))
	for _, name := range names {
		params = append(params, param{Name: name, Value: scalarString(fx.Parameters[name])})
	}

	kfNames := make([]string, 0, len(fx.Keyframes))
	for name := range fx.Keyframes {
		kfNames = append(kfNames, name)
	}
	sort.Strings(kfNames)
	for _, name := range kfNames {
		series := fx.Keyframes[name]
		p := param{Name: name, Keyframes: make([]keyframe, 0, len(series))}
		for _, kf := range series {
			p.Keyframes = append(p.Keyframes, keyframe{
				Time:  fmt.Sprintf("%gs", kf.T),
				Value: scalarString(kf.V),
			})
		}
		params = append(params, p)
	}
	return params
}

func scalarString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return fmt.Sprintf("%g", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// rationalSeconds renders a frame count as an exact seconds fraction at
// the given rate, e.g. 100 frames at 25fps is "100/25s".
func rationalSeconds(frames int64, rate timecode.Rate) string {
	if frames == 0 {
		return "0s"
	}
	num := frames * rate.Den
	den := rate.Num
	g := gcd(num, den)
	if g > 1 {
		num /= g
		den /= g
	}
	if den == 1 {
		return fmt.Sprintf("%ds", num)
	}
	return fmt.Sprintf("%d/%ds", num, den)
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
