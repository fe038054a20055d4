package i2c

import (
	"reflect"
	"testing"
)

func TestToolsArgConstruction(t *testing.T) {
	tools := NewTools(7, "/usr/sbin/i2cget", "/usr/sbin/i2cset")

	gotRead := tools.readArgs(0x1F)
	wantRead := []string{"-y", "7", "0x50", "0x1f"}
	if !reflect.DeepEqual(gotRead, wantRead) {
		t.Errorf("readArgs = %v, want %v", gotRead, wantRead)
	}

	gotWrite := tools.writeArgs(0xFF, 0x0A)
	wantWrite := []string{"-y", "7", "0x50", "0xff", "0x0a"}
	if !reflect.DeepEqual(gotWrite, wantWrite) {
		t.Errorf("writeArgs = %v, want %v", gotWrite, wantWrite)
	}
}

func TestParseToolOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    byte
		wantErr bool
	}{
		{name: "hex with newline", out: "0xab\n", want: 0xAB},
		{name: "hex without newline", out: "0x00", want: 0x00},
		{name: "max value", out: "0xff\n", want: 0xFF},
		{name: "decimal", out: "16\n", want: 16},
		{name: "empty", out: "", wantErr: true},
		{name: "garbage", out: "Error: Read failed\n", wantErr: true},
		{name: "out of range", out: "0x100\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseToolOutput(tt.out)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseToolOutput(%q) = 0x%02x, want error", tt.out, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseToolOutput(%q): %v", tt.out, err)
			}
			if got != tt.want {
				t.Errorf("parseToolOutput(%q) = 0x%02x, want 0x%02x", tt.out, got, tt.want)
			}
		})
	}
}

func TestToolsOffsetBounds(t *testing.T) {
	tools := NewTools(0, "/bin/false", "/bin/false")

	if _, err := tools.ReadByte(BlockSize); err == nil {
		t.Error("out-of-range read offset accepted")
	}
	if err := tools.WriteByte(-1, 0); err == nil {
		t.Error("negative write offset accepted")
	}
}
