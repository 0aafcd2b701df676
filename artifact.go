package telecodec

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ToHex renders a payload as uppercase hex, the form the modem's AT command
// interface expects and the form kept on disk for offline inspection.
func ToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// SaveArtifacts persists a payload as a timestamped raw .bin plus its .hex
// text rendering under dir, creating the directory if needed. It returns
// both paths. Transporting the files is someone else's job.
func SaveArtifacts(dir string, raw []byte) (binPath, hexPath string, err error) {
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	ts := time.Now().Format("20060102_150405")
	binPath = filepath.Join(dir, "payload_"+ts+".bin")
	hexPath = filepath.Join(dir, "payload_"+ts+".hex")

	if err = os.WriteFile(binPath, raw, 0o644); err != nil {
		return "", "", err
	}
	if err = os.WriteFile(hexPath, []byte(ToHex(raw)+"\n"), 0o644); err != nil {
		return "", "", err
	}
	return binPath, hexPath, nil
}
