package slide

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/wordreel/internal/wordinfo"
)

// EMU per inch, the coordinate unit of OOXML drawings
const emuPerInch = 914400

// Layout coordinates in EMU. One title across the top, the image on the
// left, definition and example stacked on the right.
const (
	slideWidth  = 10 * emuPerInch
	slideHeight = 15 * emuPerInch / 2 // 7.5in

	titleLeft   = 1 * emuPerInch
	titleTop    = emuPerInch / 2
	titleWidth  = 8 * emuPerInch
	titleHeight = 1 * emuPerInch

	pictureLeft = 1 * emuPerInch
	pictureTop  = 3 * emuPerInch / 2
	pictureSize = 5 * emuPerInch

	textLeft       = 6 * emuPerInch
	definitionTop  = 3 * emuPerInch / 2
	exampleTop     = 4 * emuPerInch
	textBoxWidth   = 4 * emuPerInch
	textBoxHeight  = 5 * emuPerInch / 2
	bodyFontSize   = 2200 // 22pt in hundredths
	titleFontSize  = 4400 // 44pt in hundredths
)

// Build writes a one-slide .pptx presentation for the word to outputPath
func Build(outputPath string, info *wordinfo.WordInfo, imageData []byte) error {
	if info == nil {
		return fmt.Errorf("word info is required")
	}
	if len(imageData) == 0 {
		return fmt.Errorf("image data is required")
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	imageExt := "png"
	if !bytes.HasPrefix(imageData, []byte("\x89PNG")) {
		imageExt = "jpeg"
	}

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"ppt/presentation.xml", []byte(presentationXML)},
		{"ppt/_rels/presentation.xml.rels", []byte(presentationRelsXML)},
		{"ppt/slideMasters/slideMaster1.xml", []byte(slideMasterXML)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", []byte(slideMasterRelsXML)},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(slideLayoutXML)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", []byte(slideLayoutRelsXML)},
		{"ppt/theme/theme1.xml", []byte(themeXML)},
		{"ppt/slides/slide1.xml", []byte(slideXML(info))},
		{"ppt/slides/_rels/slide1.xml.rels", []byte(slideRelsXML(imageExt))},
		{"ppt/media/image1." + imageExt, imageData},
	}

	for _, part := range parts {
		f, err := w.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create pptx part %s: %w", part.name, err)
		}
		if _, err := f.Write(part.content); err != nil {
			return fmt.Errorf("failed to write pptx part %s: %w", part.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize pptx: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save presentation: %w", err)
	}

	return nil
}

// slideXML builds the slide part: title, picture and two text boxes
func slideXML(info *wordinfo.WordInfo) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	b.WriteString(textShape(2, "Title", titleLeft, titleTop, titleWidth, titleHeight, titleFontSize, true, info.Word))
	b.WriteString(pictureShape(3, pictureLeft, pictureTop, pictureSize, pictureSize))
	b.WriteString(textShape(4, "Definition", textLeft, definitionTop, textBoxWidth, textBoxHeight, bodyFontSize, false, info.Definition))
	b.WriteString(textShape(5, "Example", textLeft, exampleTop, textBoxWidth, textBoxHeight, bodyFontSize, false, info.Example))

	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr></p:sld>`)
	return b.String()
}

// textShape emits a word-wrapped text box at a fixed position
func textShape(id int, name string, x, y, w, h, fontSize int, center bool, text string) string {
	align := ""
	if center {
		align = ` algn="ctr"`
	}
	return fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
			`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/><a:p><a:pPr%s/>`+
			`<a:r><a:rPr lang="en-US" sz="%d" dirty="0"><a:solidFill><a:srgbClr val="000000"/></a:solidFill></a:rPr>`+
			`<a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`,
		id, name, x, y, w, h, align, fontSize, escapeXML(text))
}

// pictureShape emits the generated image at a fixed position
func pictureShape(id, x, y, w, h int) string {
	return fmt.Sprintf(
		`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
			`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, x, y, w, h)
}

// slideRelsXML links the slide to its layout and embedded image
func slideRelsXML(imageExt string) string {
	return xmlHeader +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
		`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image1.` + imageExt + `"/>` +
		`</Relationships>`
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
