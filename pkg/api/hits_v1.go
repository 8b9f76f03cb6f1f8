// pkg/api/hits_v1.go
package api

// HitV1 is the stable JSON/JSONL schema for one --tblout row.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type HitV1 struct {
	TargetName      string  `json:"target_name"`
	TargetAccession string  `json:"target_accession"`
	QueryName       string  `json:"query_name"`
	QueryAccession  string  `json:"query_accession"`
	FullEValue      float64 `json:"full_evalue"`
	FullScore       float64 `json:"full_score"`
	FullBias        float64 `json:"full_bias"`
	BestEValue      float64 `json:"best_evalue"`
	BestScore       float64 `json:"best_score"`
	BestBias        float64 `json:"best_bias"`
	Exp             float64 `json:"exp"`
	Reg             int     `json:"reg"`
	Clu             int     `json:"clu"`
	Ov              int     `json:"ov"`
	Env             int     `json:"env"`
	Dom             int     `json:"dom"`
	Rep             int     `json:"rep"`
	Inc             int     `json:"inc"`
	Description     string  `json:"description,omitempty"`
	SourceFile      string  `json:"source_file,omitempty"`
}

// DomainHitV1 is the stable schema for one --domtblout row.
type DomainHitV1 struct {
	TargetName      string  `json:"target_name"`
	TargetAccession string  `json:"target_accession"`
	TargetLength    int     `json:"target_length"`
	QueryName       string  `json:"query_name"`
	QueryAccession  string  `json:"query_accession"`
	QueryLength     int     `json:"query_length"`
	FullEValue      float64 `json:"full_evalue"`
	FullScore       float64 `json:"full_score"`
	FullBias        float64 `json:"full_bias"`
	Dom             int     `json:"dom"`
	NDom            int     `json:"ndom"`
	CEValue         float64 `json:"c_evalue"`
	IEValue         float64 `json:"i_evalue"`
	DomScore        float64 `json:"dom_score"`
	DomBias         float64 `json:"dom_bias"`
	HMMFrom         int     `json:"hmm_from"`
	HMMTo           int     `json:"hmm_to"`
	AliFrom         int     `json:"ali_from"`
	AliTo           int     `json:"ali_to"`
	EnvFrom         int     `json:"env_from"`
	EnvTo           int     `json:"env_to"`
	Acc             float64 `json:"acc"`
	Description     string  `json:"description,omitempty"`
	SourceFile      string  `json:"source_file,omitempty"`
}
