package client

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

var (
	// filename*=charset'lang'percent-encoded (RFC 5987)
	extendedFilename = regexp.MustCompile(`(?i)filename\*\s*=\s*([^';]*)'[^']*'([^;]+)`)
	plainFilename    = regexp.MustCompile(`(?i)(?:^|;)\s*filename\s*=\s*("(?:[^"\\]|\\.)*"|[^;]*)`)
)

// FilenameFromDisposition extracts the download name from a Content-Disposition
// header. The RFC 5987 filename* form wins over a plain filename token; an
// empty string means the header offered nothing usable. Any directory part is
// stripped.
func FilenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	if m := extendedFilename.FindStringSubmatch(header); m != nil {
		if name := decodeExtended(strings.TrimSpace(m[1]), strings.TrimSpace(m[2])); name != "" {
			return baseName(name)
		}
	}
	if m := plainFilename.FindStringSubmatch(header); m != nil {
		v := strings.TrimSpace(m[1])
		if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
			v = v[1 : len(v)-1]
			v = strings.NewReplacer(`\"`, `"`, `\\`, `\`).Replace(v)
		}
		return baseName(v)
	}
	return ""
}

func decodeExtended(charset, value string) string {
	raw, err := url.PathUnescape(value)
	if err != nil {
		return ""
	}
	var cm *charmap.Charmap
	switch strings.ToLower(charset) {
	case "iso-8859-1", "latin1":
		cm = charmap.ISO8859_1
	case "iso-8859-2", "latin2":
		cm = charmap.ISO8859_2
	case "windows-1250", "cp1250":
		cm = charmap.Windows1250
	default:
		return raw
	}
	decoded, err := cm.NewDecoder().String(raw)
	if err != nil {
		return ""
	}
	return decoded
}

func baseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if name == "." || name == ".." {
		return ""
	}
	return name
}
