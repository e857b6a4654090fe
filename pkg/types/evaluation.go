package types

import (
	"fmt"
	"strings"
)

// Origin identifies which evaluation workflow produced a record.
type Origin string

const (
	// OriginAdministration is the administrative workflow (operations, security, quality).
	OriginAdministration Origin = "ADMINISTRAÇÃO"
	// OriginSupplies is the procurement workflow (documentation only).
	OriginSupplies Origin = "SUPRIMENTOS"
)

// Origins returns both workflows in display order.
func Origins() []Origin {
	return []Origin{OriginAdministration, OriginSupplies}
}

// ParseOrigin accepts the canonical names plus the short ADM/SUP aliases,
// case-insensitively.
func ParseOrigin(s string) (Origin, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADMINISTRAÇÃO", "ADMINISTRACAO", "ADM":
		return OriginAdministration, nil
	case "SUPRIMENTOS", "SUP":
		return OriginSupplies, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrigin, s)
	}
}

// Valid reports whether o is one of the known workflows.
func (o Origin) Valid() bool {
	return o == OriginAdministration || o == OriginSupplies
}

// Collection returns the document collection holding this workflow's records.
func (o Origin) Collection() string {
	if o == OriginSupplies {
		return CollectionSupplies
	}
	return CollectionAdministration
}

// Short returns the ADM/SUP alias.
func (o Origin) Short() string {
	if o == OriginSupplies {
		return "SUP"
	}
	return "ADM"
}

// Categories returns the questionnaire sections asked by the workflow.
func (o Origin) Categories() []Category {
	if o == OriginSupplies {
		return []Category{CategoryDocumentation}
	}
	return []Category{CategoryOperations, CategorySecurity, CategoryQuality}
}

// Category is a fixed evaluation dimension.
type Category string

const (
	CategoryOperations    Category = "Atividades Operacionais"
	CategorySecurity      Category = "Segurança"
	CategoryDocumentation Category = "Documentação"
	CategoryQuality       Category = "Qualidade"
)

// Categories returns the full category set.
func Categories() []Category {
	return []Category{CategoryOperations, CategorySecurity, CategoryDocumentation, CategoryQuality}
}

// ParseCategory validates a category literal.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Valid reports whether c belongs to the fixed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryOperations, CategorySecurity, CategoryDocumentation, CategoryQuality:
		return true
	}
	return false
}

// Answer options offered for every question.
const (
	AnswerFully         = "Atende Totalmente"
	AnswerPartially     = "Atende Parcialmente"
	AnswerNot           = "Não Atende"
	AnswerNotApplicable = "Não se Aplica"
)

var answerScores = map[string]int{
	AnswerFully:         3,
	AnswerPartially:     2,
	AnswerNot:           1,
	AnswerNotApplicable: 0,
}

// AnswerOptions returns the options in display order.
func AnswerOptions() []string {
	return []string{AnswerFully, AnswerPartially, AnswerNot, AnswerNotApplicable}
}

// Score maps an answer to its dashboard score.
func Score(answer string) (int, bool) {
	s, ok := answerScores[answer]
	return s, ok
}

// Collection names.
const (
	CollectionUnits          = "unidades"
	CollectionSuppliers      = "fornecedores"
	CollectionQuestions      = "perguntas"
	CollectionSupplies       = "avaliacoes"
	CollectionAdministration = "avaliacoes_adm"
)

// Evaluation record document fields.
const (
	FieldUnit       = "Unidade"
	FieldPeriod     = "Período"
	FieldSupplier   = "Fornecedor"
	FieldCategory   = "categorias"
	FieldQuestion   = "Pergunta"
	FieldAnswer     = "Resposta"
	FieldAnsweredAt = "Data_Avaliacao"
	FieldOrigin     = "Origem"
)

// TimestampLayout formats Data_Avaliacao and snapshot timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one answered question.
type Record struct {
	Unit       string   `json:"Unidade"`
	Period     string   `json:"Período"`
	Supplier   string   `json:"Fornecedor"`
	Category   Category `json:"categorias"`
	Question   string   `json:"Pergunta"`
	Answer     string   `json:"Resposta"`
	AnsweredAt string   `json:"Data_Avaliacao"`
	Origin     Origin   `json:"Origem,omitempty"`
}

// Key returns the four-way key the record belongs to.
func (r Record) Key() SubmissionKey {
	return SubmissionKey{Supplier: r.Supplier, Unit: r.Unit, Period: r.Period, Origin: r.Origin}
}

// SubmissionKey addresses every record of one (supplier, unit, period, origin).
type SubmissionKey struct {
	Supplier string `json:"supplier" validate:"required"`
	Unit     string `json:"unit" validate:"required"`
	Period   string `json:"period" validate:"required"`
	Origin   Origin `json:"origin" validate:"required"`
}

// NormalizeName trims the surrounding blanks of a supplier or unit name as
// typed by a user. Stored records and every lookup use the trimmed form.
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}

// Normalized returns k with its supplier and unit in stored form.
func (k SubmissionKey) Normalized() SubmissionKey {
	k.Supplier = NormalizeName(k.Supplier)
	k.Unit = NormalizeName(k.Unit)
	return k
}

func (k SubmissionKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", k.Origin.Short(), k.Supplier, k.Unit, k.Period)
}
