package notion

// TitleProp builds a title property.
func TitleProp(text string) Property {
	return Property{Title: []RichText{NewText(text)}}
}

// RichTextProp builds a rich_text property.
func RichTextProp(text string) Property {
	return Property{RichText: []RichText{NewText(text)}}
}

// NumberProp builds a number property.
func NumberProp(n float64) Property {
	return Property{Number: &n}
}

// SelectProp builds a select property.
func SelectProp(name string) Property {
	return Property{Select: &SelectOption{Name: name}}
}

// MultiSelectProp builds a multi_select property.
func MultiSelectProp(names []string) Property {
	options := make([]SelectOption, len(names))
	for i, name := range names {
		options[i] = SelectOption{Name: name}
	}
	return Property{MultiSelect: options}
}

// URLProp builds a url property.
func URLProp(u string) Property {
	return Property{URL: u}
}

// StatusProp builds a status property.
func StatusProp(name string) Property {
	return Property{Status: &SelectOption{Name: name}}
}

// RelationProp builds a relation property over page ids.
func RelationProp(pageIDs []string) Property {
	relations := make([]Relation, len(pageIDs))
	for i, id := range pageIDs {
		relations[i] = Relation{ID: id}
	}
	return Property{Relation: relations}
}

// Heading1 builds a heading_1 block.
func Heading1(text string) Block {
	return Block{Object: "block", Type: "heading_1", Heading1: &BlockContent{RichText: []RichText{NewText(text)}}}
}

// Heading2 builds a heading_2 block.
func Heading2(text string) Block {
	return Block{Object: "block", Type: "heading_2", Heading2: &BlockContent{RichText: []RichText{NewText(text)}}}
}

// Paragraph builds a paragraph block.
func Paragraph(text string) Block {
	return Block{Object: "block", Type: "paragraph", Paragraph: &BlockContent{RichText: []RichText{NewText(text)}}}
}
