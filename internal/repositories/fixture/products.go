package fixture

import (
	"time"

	domain "github.com/peakform/storefront-api/internal/domain"
)

func fixtureProducts() []domain.Product {
	at := func(day int) time.Time {
		return time.Date(2025, 11, day, 0, 0, 0, 0, time.UTC)
	}
	return []domain.Product{
		{
			ID:               "prod-omega3",
			Slug:             "omega-3-fish-oil",
			Name:             "Omega-3 Fish Oil",
			ShortDescription: "Triple-strength EPA/DHA from wild-caught anchovies.",
			Description:      "Molecularly distilled fish oil delivering 2,000mg of combined EPA and DHA per serving. Third-party tested for heavy metals and oxidation.",
			Price:            2400,
			CompareAtPrice:   2900,
			Category:         domain.CategorySupplements,
			Images:           []string{"https://cdn.peakform.example/products/omega-3-fish-oil.webp"},
			Features:         []string{"2,000mg EPA/DHA per serving", "Enteric coated", "IFOS certified"},
			Benefits:         []string{"Supports cardiovascular health", "Reduces exercise-induced inflammation"},
			Ingredients:      []string{"Fish oil concentrate", "Enteric capsule", "Mixed tocopherols"},
			InStock:          true,
			Inventory:        180,
			Rating:           4.8,
			ReviewCount:      412,
			SKU:              "PF-SUP-001",
			Tags:             []string{"omega-3", "heart", "joints"},
			Featured:         true,
			CreatedAt:        at(1),
			UpdatedAt:        at(1),
		},
		{
			ID:               "prod-magnesium",
			Slug:             "magnesium-glycinate",
			Name:             "Magnesium Glycinate",
			ShortDescription: "Highly absorbable chelated magnesium for sleep and recovery.",
			Description:      "300mg of elemental magnesium per serving, bound to glycine for absorption without digestive upset.",
			Price:            2200,
			Category:         domain.CategorySupplements,
			Images:           []string{"https://cdn.peakform.example/products/magnesium-glycinate.webp"},
			Features:         []string{"300mg elemental magnesium", "Chelated glycinate form"},
			Benefits:         []string{"Deeper sleep", "Fewer muscle cramps"},
			Ingredients:      []string{"Magnesium bisglycinate", "Vegetable cellulose capsule"},
			InStock:          true,
			Inventory:        240,
			Rating:           4.7,
			ReviewCount:      289,
			SKU:              "PF-SUP-002",
			Tags:             []string{"magnesium", "sleep", "recovery"},
			CreatedAt:        at(2),
			UpdatedAt:        at(2),
		},
		{
			ID:               "prod-vitamin-d3k2",
			Slug:             "vitamin-d3-k2",
			Name:             "Vitamin D3 + K2",
			ShortDescription: "Sunshine vitamin paired with K2 for calcium routing.",
			Description:      "5,000 IU vitamin D3 with 100mcg of K2 (MK-7) in an olive oil base for absorption.",
			Price:            1900,
			Category:         domain.CategorySupplements,
			Images:           []string{"https://cdn.peakform.example/products/vitamin-d3-k2.webp"},
			Features:         []string{"5,000 IU D3", "100mcg K2 as MK-7"},
			Benefits:         []string{"Supports immune function", "Maintains bone density"},
			Ingredients:      []string{"Cholecalciferol", "Menaquinone-7", "Extra virgin olive oil"},
			InStock:          true,
			Inventory:        320,
			Rating:           4.9,
			ReviewCount:      531,
			SKU:              "PF-SUP-003",
			Tags:             []string{"vitamin-d", "immunity", "bones"},
			CreatedAt:        at(3),
			UpdatedAt:        at(3),
		},
		{
			ID:               "prod-focus-stack",
			Slug:             "focus-nootropic-stack",
			Name:             "Focus Nootropic Stack",
			ShortDescription: "Caffeine, L-theanine, and citicoline for clean focus.",
			Description:      "A balanced stack of 100mg caffeine, 200mg L-theanine, and 250mg citicoline for sustained attention without jitters.",
			Price:            4200,
			Category:         domain.CategoryNootropics,
			Images:           []string{"https://cdn.peakform.example/products/focus-nootropic-stack.webp"},
			Features:         []string{"2:1 theanine to caffeine", "250mg citicoline"},
			Benefits:         []string{"Sharper focus", "No afternoon crash"},
			Ingredients:      []string{"Caffeine anhydrous", "L-theanine", "Citicoline sodium"},
			InStock:          true,
			Inventory:        150,
			Rating:           4.6,
			ReviewCount:      198,
			SKU:              "PF-NOO-001",
			Tags:             []string{"focus", "caffeine", "productivity"},
			Featured:         true,
			CreatedAt:        at(4),
			UpdatedAt:        at(4),
		},
		{
			ID:               "prod-lions-mane",
			Slug:             "lions-mane-capsules",
			Name:             "Lion's Mane Capsules",
			ShortDescription: "Dual-extracted fruiting body lion's mane mushroom.",
			Description:      "1,000mg of dual-extracted lion's mane fruiting body per serving, standardised for beta-glucans.",
			Price:            3100,
			CompareAtPrice:   3600,
			Category:         domain.CategoryNootropics,
			Images:           []string{"https://cdn.peakform.example/products/lions-mane-capsules.webp"},
			Features:         []string{"Fruiting body only", ">25% beta-glucans"},
			Benefits:         []string{"Supports memory", "Nerve growth factor support"},
			Ingredients:      []string{"Lion's mane extract", "Vegetable cellulose capsule"},
			InStock:          true,
			Inventory:        95,
			Rating:           4.5,
			ReviewCount:      167,
			SKU:              "PF-NOO-002",
			Tags:             []string{"mushroom", "memory", "focus"},
			CreatedAt:        at(5),
			UpdatedAt:        at(5),
		},
		{
			ID:               "prod-creatine",
			Slug:             "creatine-monohydrate",
			Name:             "Creatine Monohydrate",
			ShortDescription: "Micronised creatine monohydrate, unflavoured.",
			Description:      "5g of micronised creatine monohydrate per scoop. The most studied performance supplement in existence.",
			Price:            2800,
			Category:         domain.CategoryPerformance,
			Images:           []string{"https://cdn.peakform.example/products/creatine-monohydrate.webp"},
			Features:         []string{"5g per scoop", "Micronised for mixability"},
			Benefits:         []string{"Increased power output", "Faster recovery between sets"},
			Ingredients:      []string{"Creatine monohydrate"},
			InStock:          true,
			Inventory:        410,
			Rating:           4.9,
			ReviewCount:      876,
			SKU:              "PF-PER-001",
			Tags:             []string{"creatine", "strength", "gym"},
			Featured:         true,
			CreatedAt:        at(6),
			UpdatedAt:        at(6),
		},
		{
			ID:               "prod-electrolytes",
			Slug:             "electrolyte-drink-mix",
			Name:             "Electrolyte Drink Mix",
			ShortDescription: "Sugar-free sodium, potassium, and magnesium blend.",
			Description:      "1,000mg sodium, 200mg potassium, and 60mg magnesium per stick. Citrus flavour, zero sugar.",
			Price:            1900,
			Category:         domain.CategoryPerformance,
			Images:           []string{"https://cdn.peakform.example/products/electrolyte-drink-mix.webp"},
			Features:         []string{"1,000mg sodium per stick", "Zero sugar"},
			Benefits:         []string{"Better hydration", "Fewer training headaches"},
			Ingredients:      []string{"Sodium chloride", "Potassium citrate", "Magnesium malate", "Citric acid"},
			InStock:          true,
			Inventory:        275,
			Rating:           4.6,
			ReviewCount:      342,
			SKU:              "PF-PER-002",
			Tags:             []string{"hydration", "electrolytes", "endurance"},
			CreatedAt:        at(7),
			UpdatedAt:        at(7),
		},
		{
			ID:               "prod-whey",
			Slug:             "grass-fed-whey-protein",
			Name:             "Grass-Fed Whey Protein",
			ShortDescription: "Cold-processed whey isolate from grass-fed herds.",
			Description:      "25g of protein per serving from grass-fed whey isolate, sweetened with monk fruit. Vanilla flavour.",
			Price:            4500,
			Category:         domain.CategoryRecovery,
			Images:           []string{"https://cdn.peakform.example/products/grass-fed-whey-protein.webp"},
			Features:         []string{"25g protein per serving", "Cold-processed isolate"},
			Benefits:         []string{"Muscle repair", "Convenient post-workout nutrition"},
			Ingredients:      []string{"Whey protein isolate", "Natural vanilla", "Monk fruit extract"},
			InStock:          true,
			Inventory:        130,
			Rating:           4.7,
			ReviewCount:      465,
			SKU:              "PF-REC-001",
			Tags:             []string{"protein", "recovery", "muscle"},
			CreatedAt:        at(8),
			UpdatedAt:        at(8),
		},
		{
			ID:               "prod-tart-cherry",
			Slug:             "tart-cherry-recovery-blend",
			Name:             "Tart Cherry Recovery Blend",
			ShortDescription: "Montmorency tart cherry with curcumin for sore muscles.",
			Description:      "480mg tart cherry extract with 500mg curcumin phytosome to blunt post-training soreness.",
			Price:            2600,
			CompareAtPrice:   3200,
			Category:         domain.CategoryRecovery,
			Images:           []string{"https://cdn.peakform.example/products/tart-cherry-recovery-blend.webp"},
			Features:         []string{"Montmorency cherry", "Curcumin phytosome"},
			Benefits:         []string{"Less soreness", "Supports sleep quality"},
			Ingredients:      []string{"Tart cherry extract", "Curcumin phytosome", "Black pepper extract"},
			InStock:          true,
			Inventory:        88,
			Rating:           4.4,
			ReviewCount:      121,
			SKU:              "PF-REC-002",
			Tags:             []string{"tart-cherry", "soreness", "recovery"},
			CreatedAt:        at(9),
			UpdatedAt:        at(9),
		},
		{
			ID:               "prod-sleep-formula",
			Slug:             "deep-sleep-formula",
			Name:             "Deep Sleep Formula",
			ShortDescription: "Glycine, magnesium, and apigenin. Melatonin-free.",
			Description:      "A melatonin-free blend of 3g glycine, 200mg magnesium, and 50mg apigenin to fall asleep faster and stay asleep.",
			Price:            2300,
			Category:         domain.CategorySleep,
			Images:           []string{"https://cdn.peakform.example/products/deep-sleep-formula.webp"},
			Features:         []string{"Melatonin-free", "3g glycine per serving"},
			Benefits:         []string{"Fall asleep faster", "Wake without grogginess"},
			Ingredients:      []string{"Glycine", "Magnesium bisglycinate", "Apigenin"},
			InStock:          true,
			Inventory:        205,
			Rating:           4.8,
			ReviewCount:      377,
			SKU:              "PF-SLP-001",
			Tags:             []string{"sleep", "glycine", "night"},
			Featured:         true,
			CreatedAt:        at(10),
			UpdatedAt:        at(10),
		},
		{
			ID:               "prod-recovery-ring",
			Slug:             "recovery-tracking-ring",
			Name:             "Recovery Tracking Ring",
			ShortDescription: "Titanium smart ring tracking sleep stages and HRV.",
			Description:      "A 7-day battery titanium ring measuring heart rate variability, resting heart rate, and sleep staging, with readiness scoring in the companion app.",
			Price:            29900,
			Category:         domain.CategoryWearables,
			Images:           []string{"https://cdn.peakform.example/products/recovery-tracking-ring.webp"},
			Features:         []string{"7-day battery", "HRV and sleep staging", "Titanium shell"},
			Benefits:         []string{"Know when to push or rest", "Spot sleep debt early"},
			InStock:          true,
			Inventory:        42,
			Rating:           4.5,
			ReviewCount:      233,
			SKU:              "PF-WEA-001",
			Tags:             []string{"wearable", "hrv", "sleep-tracking"},
			Featured:         true,
			CreatedAt:        at(11),
			UpdatedAt:        at(11),
		},
		{
			ID:               "prod-sleep-band",
			Slug:             "sleep-tracking-band",
			Name:             "Sleep Tracking Band",
			ShortDescription: "Soft-strap wearable focused purely on sleep metrics.",
			Description:      "A screen-free band that tracks sleep latency, stages, and overnight heart rate without notifications.",
			Price:            19900,
			Category:         domain.CategoryWearables,
			Images:           []string{"https://cdn.peakform.example/products/sleep-tracking-band.webp"},
			Features:         []string{"Screen-free design", "14-day battery"},
			Benefits:         []string{"Distraction-free tracking", "Morning sleep reports"},
			InStock:          false,
			Inventory:        0,
			Rating:           4.2,
			ReviewCount:      98,
			SKU:              "PF-WEA-002",
			Tags:             []string{"wearable", "sleep-tracking"},
			CreatedAt:        at(12),
			UpdatedAt:        at(12),
		},
		{
			ID:               "prod-glasses-amber",
			Slug:             "amber-blue-light-glasses",
			Name:             "Amber Blue Light Glasses",
			ShortDescription: "Amber lenses blocking 99% of blue light for evenings.",
			Description:      "Evening-use amber lenses that filter 99% of light in the 400-500nm range to protect melatonin production.",
			Price:            8900,
			Category:         domain.CategoryBlueLightGlasses,
			Images:           []string{"https://cdn.peakform.example/products/amber-blue-light-glasses.webp"},
			Features:         []string{"99% blue light blocked", "Anti-glare coating"},
			Benefits:         []string{"Easier wind-down", "Less evening eye strain"},
			InStock:          true,
			Inventory:        77,
			Rating:           4.6,
			ReviewCount:      154,
			SKU:              "PF-BLG-001",
			Tags:             []string{"blue-light", "evening", "eyes"},
			CreatedAt:        at(13),
			UpdatedAt:        at(13),
		},
		{
			ID:               "prod-glasses-clear",
			Slug:             "clear-lens-blue-light-glasses",
			Name:             "Clear Lens Blue Light Glasses",
			ShortDescription: "Daytime clear lenses cutting screen glare.",
			Description:      "Clear computer glasses filtering 40% of blue light for all-day screen work without colour distortion.",
			Price:            6900,
			CompareAtPrice:   7900,
			Category:         domain.CategoryBlueLightGlasses,
			Images:           []string{"https://cdn.peakform.example/products/clear-lens-blue-light-glasses.webp"},
			Features:         []string{"40% blue light filtered", "No colour distortion"},
			Benefits:         []string{"Reduced screen fatigue", "Wear all day"},
			InStock:          true,
			Inventory:        112,
			Rating:           4.3,
			ReviewCount:      87,
			SKU:              "PF-BLG-002",
			Tags:             []string{"blue-light", "daytime", "screens"},
			CreatedAt:        at(14),
			UpdatedAt:        at(14),
		},
	}
}
