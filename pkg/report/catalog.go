package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Portuguese labels, the language the demos were first written in.
var portuguese = map[string]string{
	"angle":            "ângulo",
	"apex":             "bico",
	"arm":              "braço",
	"bounces":          "quicadas",
	"forearm":          "antebraço",
	"hand":             "mão",
	"last plane":       "último plano",
	"marker":           "marcador",
	"operator":         "operador",
	"orbit":            "órbita",
	"progress":         "progresso",
	"radius":           "raio",
	"reflections":      "reflexões",
	"screw":            "helicoidal",
	"semicircle":       "semicírculo",
	"step":             "passo",
	"time":             "tempo",
	"turns":            "voltas",
	"position":         "posição",
	"velocity":         "velocidade",
	"Cube operators":   "Operadores no cubo",
	"Circular arc":     "Arco circular",
	"Composite":        "Rotação + escala + translação",
	"Reflect + rotate": "Reflexão + rotação",
	"Spinning top":     "Pião",
	"Snake":            "Serpente",
	"Bouncing ball":    "Bola quicando",
	"Two-link arm":     "Braço articulado",
	"Spiral":           "Espiral",
	"Hypocycloid":      "Hipocicloide",
	"Rolling ring":     "Anel rolante",
	"rotation":         "rotação",
	"scale":            "escala",
	"translation":      "translação",
	"reflection":       "reflexão",
	"final":            "final",
}

func init() {
	for _, tag := range []language.Tag{language.Portuguese, language.BrazilianPortuguese} {
		for k, v := range portuguese {
			// SetString only fails on a malformed tag.
			_ = message.SetString(tag, k, v)
		}
	}
}
