package annotation

import (
	"fmt"

	"github.com/obokit/gafcheck/vocabulary"
)

// EvidenceCode is one of the three-letter GAF evidence codes.
type EvidenceCode string

// The GAF evidence code vocabulary.
const (
	EvidenceEXP EvidenceCode = "EXP"
	EvidenceIDA EvidenceCode = "IDA"
	EvidenceIPI EvidenceCode = "IPI"
	EvidenceIMP EvidenceCode = "IMP"
	EvidenceIGI EvidenceCode = "IGI"
	EvidenceIEP EvidenceCode = "IEP"
	EvidenceHTP EvidenceCode = "HTP"
	EvidenceHDA EvidenceCode = "HDA"
	EvidenceHMP EvidenceCode = "HMP"
	EvidenceHGI EvidenceCode = "HGI"
	EvidenceHEP EvidenceCode = "HEP"
	EvidenceIBA EvidenceCode = "IBA"
	EvidenceIBD EvidenceCode = "IBD"
	EvidenceIKR EvidenceCode = "IKR"
	EvidenceIRD EvidenceCode = "IRD"
	EvidenceIMR EvidenceCode = "IMR"
	EvidenceISS EvidenceCode = "ISS"
	EvidenceISO EvidenceCode = "ISO"
	EvidenceISA EvidenceCode = "ISA"
	EvidenceISM EvidenceCode = "ISM"
	EvidenceIGC EvidenceCode = "IGC"
	EvidenceRCA EvidenceCode = "RCA"
	EvidenceTAS EvidenceCode = "TAS"
	EvidenceNAS EvidenceCode = "NAS"
	EvidenceIC  EvidenceCode = "IC"
	EvidenceND  EvidenceCode = "ND"
	EvidenceIEA EvidenceCode = "IEA"
)

// ecoForCode maps each evidence code to its default ECO class local id.
var ecoForCode = map[EvidenceCode]string{
	EvidenceEXP: "0000269",
	EvidenceIDA: "0000314",
	EvidenceIPI: "0000353",
	EvidenceIMP: "0000315",
	EvidenceIGI: "0000316",
	EvidenceIEP: "0000270",
	EvidenceHTP: "0006056",
	EvidenceHDA: "0007005",
	EvidenceHMP: "0007001",
	EvidenceHGI: "0007003",
	EvidenceHEP: "0007007",
	EvidenceIBA: "0000318",
	EvidenceIBD: "0000319",
	EvidenceIKR: "0000320",
	EvidenceIRD: "0000321",
	EvidenceIMR: "0000320",
	EvidenceISS: "0000250",
	EvidenceISO: "0000266",
	EvidenceISA: "0000247",
	EvidenceISM: "0000255",
	EvidenceIGC: "0000317",
	EvidenceRCA: "0000245",
	EvidenceTAS: "0000304",
	EvidenceNAS: "0000303",
	EvidenceIC:  "0000305",
	EvidenceND:  "0000307",
	EvidenceIEA: "0000501",
}

// ecoOverrides refines the code -> ECO mapping when a specific GO_REF
// reference accompanies the annotation.
var ecoOverrides = map[EvidenceCode]map[string]string{
	EvidenceIEA: {
		"GO_REF:0000002": "0000256",
		"GO_REF:0000003": "0000501",
		"GO_REF:0000004": "0000501",
		"GO_REF:0000019": "0000265",
		"GO_REF:0000020": "0000265",
		"GO_REF:0000023": "0000501",
		"GO_REF:0000035": "0000265",
		"GO_REF:0000037": "0000322",
		"GO_REF:0000038": "0000323",
		"GO_REF:0000039": "0000322",
		"GO_REF:0000040": "0000323",
		"GO_REF:0000041": "0000322",
		"GO_REF:0000049": "0000265",
		"GO_REF:0000107": "0000256",
		"GO_REF:0000108": "0000363",
	},
	EvidenceISS: {
		"GO_REF:0000011": "0000255",
		"GO_REF:0000012": "0000031",
		"GO_REF:0000027": "0000031",
	},
	EvidenceIGC: {
		"GO_REF:0000025": "0000354",
	},
}

// ParseEvidenceCode validates the evidence column.
func ParseEvidenceCode(s string) (EvidenceCode, error) {
	code := EvidenceCode(s)
	if _, ok := ecoForCode[code]; !ok {
		return "", fmt.Errorf("evidence code %q not recognized", s)
	}
	return code, nil
}

// ECO returns the ECO class URI for an evidence code. A GO_REF reference,
// when present among the record's references, can select a more specific
// ECO class than the code's default.
func (c EvidenceCode) ECO(references []string) (string, bool) {
	if overrides, ok := ecoOverrides[c]; ok {
		for _, ref := range references {
			if local, found := overrides[ref]; found {
				return vocabulary.ECOBase + local, true
			}
		}
	}
	local, ok := ecoForCode[c]
	if !ok {
		return "", false
	}
	return vocabulary.ECOBase + local, true
}

// RequiresWithFrom reports whether this code requires a non-empty
// With/From column by default. The engine's coupling table can override
// this per deployment.
func (c EvidenceCode) RequiresWithFrom() bool {
	switch c {
	case EvidenceIPI, EvidenceIGI, EvidenceISS, EvidenceISO, EvidenceISA, EvidenceIC:
		return true
	}
	return false
}

// ForbidsWithFrom reports whether this code forbids a With/From entry by
// default.
func (c EvidenceCode) ForbidsWithFrom() bool {
	switch c {
	case EvidenceIDA, EvidenceIEP, EvidenceND, EvidenceTAS, EvidenceNAS:
		return true
	}
	return false
}

// InteractingTaxon reports whether this code describes an interaction
// with another organism, so the taxon column must name both organisms.
func (c EvidenceCode) InteractingTaxon() bool {
	return c == EvidenceIGI
}
