package utils

import (
	"testing"
)

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"hello", "hello"},
		{"cobrança", "cobranca"},
		{"configurações", "configuracoes"},
		{"café", "cafe"},
		{"São Paulo", "Sao Paulo"},
		{"naïve", "naive"},
	}

	for _, test := range tests {
		result := RemoveAccents(test.input)
		if result != test.expected {
			t.Errorf("RemoveAccents(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestToPascalCaseAdvanced(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"OK", "Ok"},
		{"Not Found", "NotFound"},
		{"Non-Authoritative Information", "NonAuthoritativeInformation"},
		{"I'm a teapot", "IMATeapot"},
		{"HTTP Version Not Supported", "HttpVersionNotSupported"},
		{"XMLHttpRequest", "XmlHttpRequest"},
		{"getUserById", "GetUserById"},
		{"HELLO_WORLD", "HelloWorld"},
		{"negociação", "Negociacao"},
	}

	for _, test := range tests {
		result := ToPascalCaseAdvanced(test.input)
		if result != test.expected {
			t.Errorf("ToPascalCaseAdvanced(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestSplitCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"hello", []string{"hello"}},
		{"getUserById", []string{"get", "User", "By", "Id"}},
		{"XMLHttpRequest", []string{"XML", "Http", "Request"}},
		{"OK", []string{"OK"}},
	}

	for _, test := range tests {
		result := SplitCamelCase(test.input)
		if len(result) != len(test.expected) {
			t.Errorf("SplitCamelCase(%q) = %v, expected %v", test.input, result, test.expected)
			continue
		}
		for i, part := range result {
			if part != test.expected[i] {
				t.Errorf("SplitCamelCase(%q) = %v, expected %v", test.input, result, test.expected)
				break
			}
		}
	}
}
