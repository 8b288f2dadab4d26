package upstream

import "github.com/countryexplorer/countryexplorer-go/internal/model"

// Sample returns a small fixed set of countries used when the upstream API is
// unreachable, so listing requests still produce a usable response.
func Sample() []model.Country {
	return []model.Country{
		{
			Name:       model.CountryName{Common: "United States", Official: "United States of America"},
			Region:     "Americas",
			Capital:    []string{"Washington, D.C."},
			Population: 331900000,
			Flags: model.Flags{
				PNG: "https://flagcdn.com/w320/us.png",
				SVG: "https://flagcdn.com/us.svg",
				Alt: "The flag of the United States",
			},
		},
		{
			Name:       model.CountryName{Common: "Germany", Official: "Federal Republic of Germany"},
			Region:     "Europe",
			Capital:    []string{"Berlin"},
			Population: 83240000,
			Flags: model.Flags{
				PNG: "https://flagcdn.com/w320/de.png",
				SVG: "https://flagcdn.com/de.svg",
				Alt: "The flag of Germany",
			},
		},
		{
			Name:       model.CountryName{Common: "Japan", Official: "Japan"},
			Region:     "Asia",
			Capital:    []string{"Tokyo"},
			Population: 125800000,
			Flags: model.Flags{
				PNG: "https://flagcdn.com/w320/jp.png",
				SVG: "https://flagcdn.com/jp.svg",
				Alt: "The flag of Japan",
			},
		},
		{
			Name:       model.CountryName{Common: "Brazil", Official: "Federative Republic of Brazil"},
			Region:     "Americas",
			Capital:    []string{"Brasília"},
			Population: 215300000,
			Flags: model.Flags{
				PNG: "https://flagcdn.com/w320/br.png",
				SVG: "https://flagcdn.com/br.svg",
				Alt: "The flag of Brazil",
			},
		},
		{
			Name:       model.CountryName{Common: "Australia", Official: "Commonwealth of Australia"},
			Region:     "Oceania",
			Capital:    []string{"Canberra"},
			Population: 25690000,
			Flags: model.Flags{
				PNG: "https://flagcdn.com/w320/au.png",
				SVG: "https://flagcdn.com/au.svg",
				Alt: "The flag of Australia",
			},
		},
	}
}
