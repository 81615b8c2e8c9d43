package analysis

import (
	"fmt"
	"math"

	"physique-coach/internal/store"
)

// SkinfoldMethod identifies the regression used to estimate body density
type SkinfoldMethod string

const (
	MethodJacksonPollock3  SkinfoldMethod = "jackson_pollock_3"
	MethodDurninWomersley4 SkinfoldMethod = "durnin_womersley_4"
	MethodJacksonPollock7  SkinfoldMethod = "jackson_pollock_7"
)

// dwCoefficients is a Durnin–Womersley (C, M) pair
type dwCoefficients struct {
	C, M float64
}

// Durnin–Womersley 4-site coefficients by age bracket: 20–29, 30–39, 40–49, 50+
var durninWomersley = map[store.Sex][4]dwCoefficients{
	store.SexMale: {
		{1.1631, 0.0632},
		{1.1422, 0.0544},
		{1.1620, 0.0700},
		{1.1715, 0.0779},
	},
	store.SexFemale: {
		{1.1599, 0.0717},
		{1.1423, 0.0632},
		{1.1333, 0.0612},
		{1.1339, 0.0645},
	},
}

// BodyDensity estimates body density from a skinfold sum (mm).
// The regression is selected by site count (3, 4 or 7) and sex.
func BodyDensity(sum float64, sites int, age float64, sex store.Sex) (float64, error) {
	if sum <= 0 {
		return 0, fmt.Errorf("%w: skinfold sum %v must be positive", ErrInvalidInput, sum)
	}
	if age <= 0 {
		return 0, fmt.Errorf("%w: age %v must be positive", ErrInvalidInput, age)
	}
	if sex != store.SexMale && sex != store.SexFemale {
		return 0, fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, sex)
	}

	switch sites {
	case 3:
		if sex == store.SexMale {
			return 1.10938 - 0.0008267*sum + 0.0000016*sum*sum - 0.0002574*age, nil
		}
		return 1.0994921 - 0.0009929*sum + 0.0000023*sum*sum - 0.0001392*age, nil
	case 7:
		if sex == store.SexMale {
			return 1.112 - 0.00043499*sum + 0.00000055*sum*sum - 0.00028826*age, nil
		}
		return 1.097 - 0.00046971*sum + 0.00000056*sum*sum - 0.00012828*age, nil
	case 4:
		k := durninWomersley[sex][ageBracket(age)]
		return k.C - k.M*math.Log10(sum), nil
	default:
		return 0, fmt.Errorf("%w: no skinfold equation for %d sites", ErrInvalidInput, sites)
	}
}

// ageBracket maps age to the Durnin–Womersley table row.
// Ages under 20 use the 20–29 row.
func ageBracket(age float64) int {
	switch {
	case age < 30:
		return 0
	case age < 40:
		return 1
	case age < 50:
		return 2
	default:
		return 3
	}
}

// BodyFatFromSkinfolds converts a skinfold sum to body-fat percent via Siri
func BodyFatFromSkinfolds(sum float64, sites int, age float64, sex store.Sex) (float64, error) {
	dc, err := BodyDensity(sum, sites, age, sex)
	if err != nil {
		return 0, err
	}
	return SiriBodyFat(dc)
}

// SkinfoldResult is a skinfold-derived body-fat estimate
type SkinfoldResult struct {
	Method  SkinfoldMethod
	Sum     float64
	Density float64
	BodyFat float64
}

type skinfoldProtocol struct {
	method SkinfoldMethod
	sites  []*float64
}

// SkinfoldEstimate picks the most complete protocol the recorded sites allow:
// 7-site, then 4-site, then the sex-specific 3-site.
func SkinfoldEstimate(sf store.Skinfolds, age float64, sex store.Sex) (SkinfoldResult, error) {
	protocols := []skinfoldProtocol{
		{MethodJacksonPollock7, []*float64{sf.Chest, sf.Midaxillary, sf.Triceps, sf.Subscapular, sf.Abdomen, sf.Suprailiac, sf.Thigh}},
		{MethodDurninWomersley4, []*float64{sf.Biceps, sf.Triceps, sf.Subscapular, sf.Suprailiac}},
	}
	if sex == store.SexFemale {
		protocols = append(protocols, skinfoldProtocol{MethodJacksonPollock3, []*float64{sf.Triceps, sf.Suprailiac, sf.Thigh}})
	} else {
		protocols = append(protocols, skinfoldProtocol{MethodJacksonPollock3, []*float64{sf.Chest, sf.Abdomen, sf.Thigh}})
	}

	for _, p := range protocols {
		sum, ok := sumSites(p.sites)
		if !ok {
			continue
		}
		dc, err := BodyDensity(sum, len(p.sites), age, sex)
		if err != nil {
			return SkinfoldResult{}, err
		}
		bf, err := SiriBodyFat(dc)
		if err != nil {
			return SkinfoldResult{}, err
		}
		return SkinfoldResult{Method: p.method, Sum: sum, Density: dc, BodyFat: bf}, nil
	}

	return SkinfoldResult{}, fmt.Errorf("%w: no complete skinfold protocol", ErrMissingInput)
}

func sumSites(sites []*float64) (float64, bool) {
	sum := 0.0
	for _, s := range sites {
		if s == nil {
			return 0, false
		}
		sum += *s
	}
	return sum, true
}
