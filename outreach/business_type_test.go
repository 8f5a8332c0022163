package outreach

import (
	"testing"

	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
)

func TestClassifyBusiness(t *testing.T) {
	tests := []struct {
		name     string
		category *string
		expected BusinessType
	}{
		{"nil category", nil, BusinessTypeGeneral},
		{"empty category", utils.ToPtr(""), BusinessTypeGeneral},
		{"whitespace only", utils.ToPtr("   "), BusinessTypeGeneral},
		{"unmatched category", utils.ToPtr("Quantum Widgets Inc"), BusinessTypeGeneral},
		{"pizza place", utils.ToPtr("Tony's Pizza & Pasta"), BusinessTypeRestaurant},
		{"case insensitive", utils.ToPtr("COFFEE ROASTERS"), BusinessTypeRestaurant},
		{"boutique", utils.ToPtr("Maple Street Boutique"), BusinessTypeRetail},
		{"law firm", utils.ToPtr("Harris & Cole Law Firm"), BusinessTypeProfessionalServices},
		{"yoga studio matches health first", utils.ToPtr("Sunrise Yoga"), BusinessTypeHealthWellness},
		{"barber shop is health, not retail", utils.ToPtr("Barber Shop"), BusinessTypeHealthWellness},
		{"sports bar is a restaurant", utils.ToPtr("Joe's Sports Bar"), BusinessTypeRestaurant},
		{"marketing agency is professional, not retail", utils.ToPtr("Marketing Agency"), BusinessTypeProfessionalServices},
		{"plumber", utils.ToPtr("A1 Plumbing"), BusinessTypeHomeServices},
		{"auto repair", utils.ToPtr("Joe's Auto Repair"), BusinessTypeAutomotive},
		{"photographer", utils.ToPtr("Wedding Photography"), BusinessTypeCreator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyBusiness(tt.category))
		})
	}
}

func TestClassifyBusinessTotality(t *testing.T) {
	// Every input, however odd, must land on exactly one valid type.
	inputs := []string{
		"", " ", "!!!", "1234", "café & more", "shop shop shop",
		"RESTAURANT RETAIL GYM", "a", string(rune(0)), "\n\t",
	}
	for _, in := range inputs {
		got := ClassifyBusiness(&in)
		assert.True(t, got.Valid(), "classify(%q) returned invalid type %q", in, got)
	}
}

func TestClassifyBusinessOrderIsStable(t *testing.T) {
	// "restaurant retail" matches both tables; the restaurant entry is tested
	// first and must win every time.
	category := "Restaurant & Retail Supply"
	for i := 0; i < 10; i++ {
		assert.Equal(t, BusinessTypeRestaurant, ClassifyBusiness(&category))
	}
}
