package testcomponents

import (
	"github.com/vcrobe/nojs-router/runtime"
	"github.com/vcrobe/nojs-router/vdom"
)

// Layout is a component with a body slot.
type Layout struct {
	runtime.ComponentBase
	Name        string
	BodyContent []*vdom.VNode
	Destroyed   int
}

var (
	_ runtime.Component = (*Layout)(nil)
	_ runtime.SlotHost  = (*Layout)(nil)
	_ runtime.Cleaner   = (*Layout)(nil)
)

func (l *Layout) SetBodyContent(children []*vdom.VNode) { l.BodyContent = children }
func (l *Layout) OnDestroy()                            { l.Destroyed++ }

func (l *Layout) Render(runtime.Renderer) *vdom.VNode {
	return vdom.Div(map[string]any{"class": l.Name}, l.BodyContent...)
}

// Page is a leaf component showing its params.
type Page struct {
	runtime.ComponentBase
	Name      string
	Params    map[string]string
	Destroyed int
}

var (
	_ runtime.ParamsReceiver = (*Page)(nil)
	_ runtime.Cleaner        = (*Page)(nil)
)

func (p *Page) SetParams(params map[string]string) { p.Params = params }
func (p *Page) OnDestroy()                         { p.Destroyed++ }

func (p *Page) Render(runtime.Renderer) *vdom.VNode {
	text := p.Name
	if id, ok := p.Params["id"]; ok {
		text += " " + id
	}
	return vdom.Paragraph(text, nil)
}

// Tracker records every instance its factories build.
type Tracker struct {
	Layouts []*Layout
	Pages   []*Page
}

// LayoutMeta returns component metadata building Layouts named name.
func (t *Tracker) LayoutMeta(name string, typeID uint32) runtime.ComponentMetadata {
	return runtime.ComponentMetadata{
		TypeID: typeID,
		Factory: func(map[string]string) runtime.Component {
			l := &Layout{Name: name}
			t.Layouts = append(t.Layouts, l)
			return l
		},
	}
}

// PageMeta returns component metadata building Pages named name.
func (t *Tracker) PageMeta(name string, typeID uint32) runtime.ComponentMetadata {
	return runtime.ComponentMetadata{
		TypeID: typeID,
		Factory: func(params map[string]string) runtime.Component {
			p := &Page{Name: name, Params: params}
			t.Pages = append(t.Pages, p)
			return p
		},
	}
}
