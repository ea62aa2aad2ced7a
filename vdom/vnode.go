package vdom

// VNode represents a virtual DOM node.
type VNode struct {
	Tag        string
	Attributes map[string]any
	Children   []*VNode
	Content    string
	// OnClick runs when the rendered element is clicked.
	OnClick func()
}

// NewVNode creates a new VNode. A func() under the "onClick" attribute is
// moved to OnClick.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	var onClick func()
	if attributes != nil {
		if v, ok := attributes["onClick"]; ok {
			if f, ok := v.(func()); ok {
				onClick = f
				delete(attributes, "onClick")
			}
		}
	}
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
		OnClick:    onClick,
	}
}

// Paragraph creates a <p> with text.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// Div creates a <div> with children.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Anchor creates an <a> pointing at href. onClick may be nil.
func Anchor(href, text string, attrs map[string]any, onClick func()) *VNode {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["href"] = href
	n := NewVNode("a", attrs, nil, text)
	n.OnClick = onClick
	return n
}

// Attr returns the string form of attribute name, or "".
func (v *VNode) Attr(name string) string {
	s, _ := v.Attributes[name].(string)
	return s
}
