package curie

import "github.com/obokit/gafcheck/vocabulary"

// relationLabels maps the relation labels that appear in annotation
// extension columns to their ontology URIs. Labels are the GAF surface
// syntax; the URIs are what rules and the graph operate on.
var relationLabels = map[string]string{
	"occurs_in":                  vocabulary.BFOBase + "0000066",
	"part_of":                    vocabulary.BFOBase + "0000050",
	"has_part":                   vocabulary.BFOBase + "0000051",
	"happens_during":             vocabulary.ROBase + "0002092",
	"has_input":                  vocabulary.ROBase + "0002233",
	"has_output":                 vocabulary.GORELBase + "0000006",
	"has_participant":            vocabulary.ROBase + "0000057",
	"has_agent":                  vocabulary.ROBase + "0002218",
	"has_start_location":         vocabulary.ROBase + "0002231",
	"has_end_location":           vocabulary.ROBase + "0002232",
	"has_target_start_location":  vocabulary.ROBase + "0002338",
	"has_target_end_location":    vocabulary.ROBase + "0002339",
	"adjacent_to":                vocabulary.ROBase + "0002220",
	"overlaps":                   vocabulary.ROBase + "0002131",
	"coincident_with":            vocabulary.ROBase + "0002008",
	"exists_during":              vocabulary.GORELBase + "0000032",
	"not_exists_during":          vocabulary.GORELBase + "0000026",
	"not_happens_during":         vocabulary.GORELBase + "0000025",
	"located_in":                 vocabulary.ROBase + "0001025",
	"is_active_in":               vocabulary.ROBase + "0002432",
	"enables":                    vocabulary.ROBase + "0002327",
	"enabled_by":                 vocabulary.ROBase + "0002333",
	"involved_in":                vocabulary.ROBase + "0002331",
	"contributes_to":             vocabulary.ROBase + "0002326",
	"colocalizes_with":           vocabulary.ROBase + "0002325",
	"acts_upstream_of":           vocabulary.ROBase + "0002263",
	"acts_upstream_of_or_within": vocabulary.ROBase + "0002264",
	"acts_upstream_of_or_within_positive_effect": vocabulary.ROBase + "0004032",
	"acts_upstream_of_or_within_negative_effect": vocabulary.ROBase + "0004033",
	"acts_upstream_of_positive_effect":           vocabulary.ROBase + "0004034",
	"acts_upstream_of_negative_effect":           vocabulary.ROBase + "0004035",
	"causally_upstream_of":                       vocabulary.ROBase + "0002411",
	"causally_upstream_of_or_within":             vocabulary.ROBase + "0002418",
	"regulates":                                  vocabulary.ROBase + "0002211",
	"negatively_regulates":                       vocabulary.ROBase + "0002212",
	"positively_regulates":                       vocabulary.ROBase + "0002213",
	"directly_regulates":                         vocabulary.ROBase + "0002578",
	"directly_positively_regulates":              vocabulary.ROBase + "0002629",
	"directly_negatively_regulates":              vocabulary.ROBase + "0002449",
	"results_in_specification_of":                vocabulary.ROBase + "0002356",
	"results_in_development_of":                  vocabulary.ROBase + "0002296",
	"results_in_movement_of":                     vocabulary.ROBase + "0002565",
	"results_in_formation_of":                    vocabulary.ROBase + "0002297",
	"results_in_maturation_of":                   vocabulary.ROBase + "0002299",
	"results_in_morphogenesis_of":                vocabulary.ROBase + "0002298",
	"results_in_commitment_to":                   vocabulary.ROBase + "0002348",
	"results_in_determination_of":                vocabulary.ROBase + "0002349",
	"results_in_acquisition_of_features_of":      vocabulary.ROBase + "0002315",
	"transports_or_maintains_localization_of":    vocabulary.ROBase + "0002313",
	"acts_on_population_of":                      vocabulary.GORELBase + "0001006",
	"produced_by":                                vocabulary.ROBase + "0003001",
	"imports":                                    vocabulary.ROBase + "0002340",
	"stabilizes":                                 vocabulary.GORELBase + "0000018",
	"occurs_at":                                  vocabulary.GORELBase + "0000501",
	"inhibited_by":                               vocabulary.GORELBase + "0000508",
	"activated_by":                               vocabulary.GORELBase + "0000507",
	"has_direct_input":                           vocabulary.GORELBase + "0000752",
	"capable_of_part_of":                         vocabulary.ROBase + "0002216",
	"regulates_transport_of":                     vocabulary.ROBase + "0002011",
	"regulates_transcription_of":                 vocabulary.GORELBase + "0098788",
	"regulates_expression_of":                    vocabulary.GORELBase + "0098789",
	"regulates_translation_of":                   vocabulary.GORELBase + "0098790",
	"regulates_activity_of":                      vocabulary.GORELBase + "0098702",
}

// uriLabels is the reverse of relationLabels, built once at init.
var uriLabels = func() map[string]string {
	m := make(map[string]string, len(relationLabels))
	for label, uri := range relationLabels {
		m[uri] = label
	}
	return m
}()

// LabelURI returns the ontology URI for a relation label.
func LabelURI(label string) (string, bool) {
	uri, ok := relationLabels[label]
	return uri, ok
}

// URILabel returns the relation label for an ontology URI.
func URILabel(uri string) (string, bool) {
	label, ok := uriLabels[uri]
	return label, ok
}
