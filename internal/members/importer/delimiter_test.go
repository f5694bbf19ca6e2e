package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDelimiterSemicolon(t *testing.T) {
	content := "Nro Socio;Apellido y Nombre;DNI\n100;Perez, Juan;20111222\n"
	assert.Equal(t, ';', DetectDelimiter(content))
}

func TestDetectDelimiterComma(t *testing.T) {
	content := "member,name,document\n1,Ana,123\n2,Luz,456\n"
	assert.Equal(t, ',', DetectDelimiter(content))
}

func TestDetectDelimiterTab(t *testing.T) {
	content := "Nro Socio\tApellido y Nombre\tDNI\n100\tPerez\t20111222\n"
	assert.Equal(t, '\t', DetectDelimiter(content))
}

func TestDetectDelimiterDefaultsToSemicolon(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter(""))
	assert.Equal(t, ';', DetectDelimiter("a single line without delimiters"))
}

func TestDetectDelimiterSamplesFirstLinesOnly(t *testing.T) {
	// Semicolons only appear after the 10-line sample window, so they must
	// not influence the result.
	content := "a,b,c\n"
	for i := 0; i < 9; i++ {
		content += "x,y,z\n"
	}
	for i := 0; i < 30; i++ {
		content += "q;w;e;r;t;y;u;i\n"
	}
	assert.Equal(t, ',', DetectDelimiter(content))
}
