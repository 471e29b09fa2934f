// Package i18n holds the user-facing reason strings reported when a save
// fails, in English and Korean.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	NoImage          = "There is no image to save."
	NoStrokes        = "Nothing has been blurred yet."
	CompositeFailure = "Image processing failed."
	PermissionDenied = "Allow access to the photo library to save."
	SaveFailed       = "Save failed."
	Timeout          = "Saving timed out."
	InProgress       = "A save is already in progress."
	Saved            = "Saved!"
)

var korean = map[string]string{
	NoImage:          "이미지가 없습니다.",
	NoStrokes:        "블러 처리된 부분이 없습니다.",
	CompositeFailure: "이미지 처리에 실패했습니다.",
	PermissionDenied: "사진 라이브러리 접근 권한을 허용해주세요.",
	SaveFailed:       "저장 실패",
	Timeout:          "저장 시간이 초과되었습니다.",
	InProgress:       "이미 저장 중입니다.",
	Saved:            "저장 완료!",
}

var cat = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, ko := range korean {
		// Keys are constants; SetString only fails on malformed messages.
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Korean, key, ko)
	}
	return b
}

// supported lists the languages with a full translation. The first entry
// is the fallback.
var supported = []language.Tag{language.English, language.Korean}

var matcher = language.NewMatcher(supported)

// Printer formats messages for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter returns a printer for the best supported match of tag.
func NewPrinter(tag language.Tag) *Printer {
	_, idx, _ := matcher.Match(tag)
	matched := supported[idx]
	return &Printer{
		tag: matched,
		p:   message.NewPrinter(matched, message.Catalog(cat)),
	}
}

// Language returns the language the printer actually uses.
func (p *Printer) Language() language.Tag {
	return p.tag
}

// Sprint returns the translation of key.
func (p *Printer) Sprint(key string) string {
	return p.p.Sprintf(key)
}
