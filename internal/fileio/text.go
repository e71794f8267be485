package fileio

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeAll переводит содержимое в UTF-8. Валидный UTF-8 не трогаем,
// иначе кодировку угадывает chardet (Big5 / GB18030 / cp1251 / UTF-16),
// а если не угадал — считаем Big5 (прайсы из Гонконга).
func decodeAll(b []byte) (string, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b), nil
	}
	enc := detectEncoding(b)
	if enc == nil {
		enc = traditionalchinese.Big5
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func detectEncoding(b []byte) encoding.Encoding {
	peek := b
	if len(peek) > 4096 {
		peek = peek[:4096]
	}
	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err != nil || det == nil {
		return nil
	}
	switch strings.ToLower(det.Charset) {
	case "big5":
		return traditionalchinese.Big5
	case "gb-18030", "gb18030", "gb2312", "gbk":
		return simplifiedchinese.GB18030
	case "windows-1251", "cp1251":
		return charmap.Windows1251
	case "iso-8859-1", "windows-1252":
		return charmap.Windows1252
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return nil
	}
}

// readText — TSV/TXT как есть, только перекодировка и \r\n -> \n.
func readText(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s, err := decodeAll(b)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(s, "\r\n", "\n"), nil
}
