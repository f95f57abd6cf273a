package palette

import "skintone-studio/models"

// catalogue is the curated swatch list. Hex values repeat across groups on purpose:
// the same color is offered under several naming systems.
var catalogue = []models.SkinTone{
	// Fitzpatrick Type I - Very Fair
	{ID: "fitzpatrick-1a", Name: "Very Fair - Type I", Color: "#FFE5D4", Description: "Very fair skin, always burns, never tans", Undertone: models.UndertoneCool},
	{ID: "fitzpatrick-1b", Name: "Very Fair - Warm", Color: "#FFDCC4", Description: "Very fair skin with warm undertones", Undertone: models.UndertoneWarm},
	{ID: "fitzpatrick-1c", Name: "Very Fair - Neutral", Color: "#FFE0C8", Description: "Very fair skin with neutral undertones", Undertone: models.UndertoneNeutral},
	// Fitzpatrick Type II - Fair
	{ID: "fitzpatrick-2a", Name: "Fair - Cool", Color: "#F4D4C3", Description: "Fair skin that burns easily, tans minimally", Undertone: models.UndertoneCool},
	{ID: "fitzpatrick-2b", Name: "Fair - Warm", Color: "#F0C8A8", Description: "Fair skin with golden undertones", Undertone: models.UndertoneWarm},
	{ID: "fitzpatrick-2c", Name: "Fair - Neutral", Color: "#F2CEB3", Description: "Fair skin with balanced undertones", Undertone: models.UndertoneNeutral},
	{ID: "fitzpatrick-2d", Name: "Fair - Olive", Color: "#E8C4A0", Description: "Fair skin with olive undertones", Undertone: models.UndertoneOlive},

	// Fitzpatrick Type III - Medium
	{ID: "fitzpatrick-3a", Name: "Medium - Cool", Color: "#E8B894", Description: "Medium skin that sometimes burns, tans gradually", Undertone: models.UndertoneCool},
	{ID: "fitzpatrick-3b", Name: "Medium - Warm", Color: "#E0A878", Description: "Medium skin with warm golden undertones", Undertone: models.UndertoneWarm},
	{ID: "fitzpatrick-3c", Name: "Medium - Neutral", Color: "#E4B086", Description: "Medium skin with neutral undertones", Undertone: models.UndertoneNeutral},
	{ID: "fitzpatrick-3d", Name: "Medium - Olive", Color: "#D8A670", Description: "Medium skin with olive undertones", Undertone: models.UndertoneOlive},
	{ID: "fitzpatrick-3e", Name: "Medium - Beige", Color: "#D4A67C", Description: "Medium skin with beige undertones", Undertone: models.UndertoneWarm},

	// Fitzpatrick Type IV - Medium Dark
	{ID: "fitzpatrick-4a", Name: "Medium Dark - Cool", Color: "#C88B5A", Description: "Medium dark skin that rarely burns, tans easily", Undertone: models.UndertoneCool},
	{ID: "fitzpatrick-4b", Name: "Medium Dark - Warm", Color: "#C07A4A", Description: "Medium dark skin with warm undertones", Undertone: models.UndertoneWarm},
	{ID: "fitzpatrick-4c", Name: "Medium Dark - Neutral", Color: "#C48252", Description: "Medium dark skin with neutral undertones", Undertone: models.UndertoneNeutral},
	{ID: "fitzpatrick-4d", Name: "Medium Dark - Olive", Color: "#B87242", Description: "Medium dark skin with olive undertones", Undertone: models.UndertoneOlive},
	{ID: "fitzpatrick-4e", Name: "Medium Dark - Golden", Color: "#BE7A4A", Description: "Medium dark skin with golden undertones", Undertone: models.UndertoneWarm},

	// Fitzpatrick Type V - Dark
	{ID: "fitzpatrick-5a", Name: "Dark - Cool", Color: "#A05A2C", Description: "Dark skin that very rarely burns, tans very easily", Undertone: models.UndertoneCool},
	{ID: "fitzpatrick-5b", Name: "Dark - Warm", Color: "#964A1C", Description: "Dark skin with warm undertones", Undertone: models.UndertoneWarm},
	{ID: "fitzpatrick-5c", Name: "Dark - Neutral", Color: "#9B5224", Description: "Dark skin with neutral undertones", Undertone: models.UndertoneNeutral},
	{ID: "fitzpatrick-5d", Name: "Dark - Olive", Color: "#8E4214", Description: "Dark skin with olive undertones", Undertone: models.UndertoneOlive},
	{ID: "fitzpatrick-5e", Name: "Dark - Golden", Color: "#945224", Description: "Dark skin with golden undertones", Undertone: models.UndertoneWarm},

	// Fitzpatrick Type VI - Very Dark
	{ID: "fitzpatrick-6a", Name: "Very Dark - Cool", Color: "#5D2E1A", Description: "Very dark skin that never burns, always tans", Undertone: models.UndertoneCool},
	{ID: "fitzpatrick-6b", Name: "Very Dark - Warm", Color: "#54240A", Description: "Very dark skin with warm undertones", Undertone: models.UndertoneWarm},
	{ID: "fitzpatrick-6c", Name: "Very Dark - Neutral", Color: "#592912", Description: "Very dark skin with neutral undertones", Undertone: models.UndertoneNeutral},
	{ID: "fitzpatrick-6d", Name: "Very Dark - Olive", Color: "#4C1E02", Description: "Very dark skin with olive undertones", Undertone: models.UndertoneOlive},

	// Von Luschan Scale Variations
	{ID: "von-luschan-1", Name: "Von Luschan 1", Color: "#FFF5F0", Description: "Extremely fair skin", Undertone: models.UndertoneCool},
	{ID: "von-luschan-2", Name: "Von Luschan 2", Color: "#FFE8D6", Description: "Very fair skin", Undertone: models.UndertoneWarm},
	{ID: "von-luschan-3", Name: "Von Luschan 3", Color: "#FFDCC4", Description: "Fair skin", Undertone: models.UndertoneNeutral},
	{ID: "von-luschan-4", Name: "Von Luschan 4", Color: "#F4D4C3", Description: "Light skin", Undertone: models.UndertoneWarm},
	{ID: "von-luschan-5", Name: "Von Luschan 5", Color: "#E8B894", Description: "Medium light skin", Undertone: models.UndertoneNeutral},
	{ID: "von-luschan-6", Name: "Von Luschan 6", Color: "#D4A67C", Description: "Medium skin", Undertone: models.UndertoneWarm},
	{ID: "von-luschan-7", Name: "Von Luschan 7", Color: "#C88B5A", Description: "Medium dark skin", Undertone: models.UndertoneOlive},
	{ID: "von-luschan-8", Name: "Von Luschan 8", Color: "#A05A2C", Description: "Dark skin", Undertone: models.UndertoneWarm},
	{ID: "von-luschan-9", Name: "Von Luschan 9", Color: "#8B4513", Description: "Very dark skin", Undertone: models.UndertoneCool},
	{ID: "von-luschan-10", Name: "Von Luschan 10", Color: "#5D2E1A", Description: "Extremely dark skin", Undertone: models.UndertoneNeutral},

	// Regional Variations
	{ID: "nordic-fair", Name: "Nordic Fair", Color: "#FFF0E6", Description: "Very fair skin common in Nordic regions", Undertone: models.UndertoneCool},
	{ID: "celtic-fair", Name: "Celtic Fair", Color: "#FFE8D6", Description: "Fair skin with freckles, common in Celtic regions", Undertone: models.UndertoneWarm},
	{ID: "mediterranean-olive", Name: "Mediterranean Olive", Color: "#D4A67C", Description: "Medium skin with olive undertones", Undertone: models.UndertoneOlive},
	{ID: "south-asian-golden", Name: "South Asian Golden", Color: "#C07A4A", Description: "Medium dark skin with golden undertones", Undertone: models.UndertoneWarm},
	{ID: "east-asian-fair", Name: "East Asian Fair", Color: "#F0C8A8", Description: "Fair skin common in East Asian regions", Undertone: models.UndertoneNeutral},
	{ID: "southeast-asian-golden", Name: "Southeast Asian Golden", Color: "#BE7A4A", Description: "Medium skin with golden undertones", Undertone: models.UndertoneWarm},
	{ID: "middle-eastern-olive", Name: "Middle Eastern Olive", Color: "#B87242", Description: "Medium skin with olive undertones", Undertone: models.UndertoneOlive},
	{ID: "north-african-golden", Name: "North African Golden", Color: "#C07A4A", Description: "Medium dark skin with golden undertones", Undertone: models.UndertoneWarm},
	{ID: "sub-saharan-dark", Name: "Sub-Saharan Dark", Color: "#8E4214", Description: "Dark skin common in Sub-Saharan Africa", Undertone: models.UndertoneCool},
	{ID: "melanesian-dark", Name: "Melanesian Dark", Color: "#54240A", Description: "Very dark skin common in Melanesia", Undertone: models.UndertoneWarm},

	// Undertone Variations
	{ID: "cool-pink", Name: "Cool Pink", Color: "#FFE0C8", Description: "Fair skin with cool pink undertones", Undertone: models.UndertoneCool},
	{ID: "warm-peach", Name: "Warm Peach", Color: "#F0C8A8", Description: "Fair skin with warm peach undertones", Undertone: models.UndertoneWarm},
	{ID: "neutral-beige", Name: "Neutral Beige", Color: "#F2CEB3", Description: "Fair skin with neutral beige undertones", Undertone: models.UndertoneNeutral},
	{ID: "olive-golden", Name: "Olive Golden", Color: "#D8A670", Description: "Medium skin with olive-golden undertones", Undertone: models.UndertoneOlive},
	{ID: "warm-golden", Name: "Warm Golden", Color: "#E0A878", Description: "Medium skin with warm golden undertones", Undertone: models.UndertoneWarm},
	{ID: "cool-ash", Name: "Cool Ash", Color: "#E8B894", Description: "Medium skin with cool ash undertones", Undertone: models.UndertoneCool},
	{ID: "neutral-taupe", Name: "Neutral Taupe", Color: "#E4B086", Description: "Medium skin with neutral taupe undertones", Undertone: models.UndertoneNeutral},
	{ID: "warm-amber", Name: "Warm Amber", Color: "#C07A4A", Description: "Medium dark skin with warm amber undertones", Undertone: models.UndertoneWarm},
	{ID: "cool-charcoal", Name: "Cool Charcoal", Color: "#A05A2C", Description: "Dark skin with cool charcoal undertones", Undertone: models.UndertoneCool},
	{ID: "neutral-ebony", Name: "Neutral Ebony", Color: "#9B5224", Description: "Dark skin with neutral ebony undertones", Undertone: models.UndertoneNeutral},
	{ID: "warm-mahogany", Name: "Warm Mahogany", Color: "#964A1C", Description: "Dark skin with warm mahogany undertones", Undertone: models.UndertoneWarm},
	{ID: "cool-jet", Name: "Cool Jet", Color: "#5D2E1A", Description: "Very dark skin with cool jet undertones", Undertone: models.UndertoneCool},
	{ID: "neutral-obsidian", Name: "Neutral Obsidian", Color: "#592912", Description: "Very dark skin with neutral obsidian undertones", Undertone: models.UndertoneNeutral},
	{ID: "warm-ebony", Name: "Warm Ebony", Color: "#54240A", Description: "Very dark skin with warm ebony undertones", Undertone: models.UndertoneWarm},

	// Special Variations
	{ID: "albinism", Name: "Albinism", Color: "#FFF8F0", Description: "Very light skin due to albinism", Undertone: models.UndertoneCool},
	{ID: "vitiligo-light", Name: "Vitiligo Light", Color: "#FFE8D6", Description: "Light skin with vitiligo patches", Undertone: models.UndertoneNeutral},
	{ID: "vitiligo-medium", Name: "Vitiligo Medium", Color: "#D4A67C", Description: "Medium skin with vitiligo patches", Undertone: models.UndertoneNeutral},
	{ID: "vitiligo-dark", Name: "Vitiligo Dark", Color: "#8E4214", Description: "Dark skin with vitiligo patches", Undertone: models.UndertoneNeutral},
	{ID: "freckled-fair", Name: "Freckled Fair", Color: "#FFE0C8", Description: "Fair skin with prominent freckles", Undertone: models.UndertoneWarm},
	{ID: "freckled-medium", Name: "Freckled Medium", Color: "#E8B894", Description: "Medium skin with prominent freckles", Undertone: models.UndertoneWarm},
	{ID: "sun-damaged-light", Name: "Sun Damaged Light", Color: "#F4D4C3", Description: "Light skin with sun damage", Undertone: models.UndertoneWarm},
	{ID: "sun-damaged-medium", Name: "Sun Damaged Medium", Color: "#C88B5A", Description: "Medium skin with sun damage", Undertone: models.UndertoneWarm},
	{ID: "sun-damaged-dark", Name: "Sun Damaged Dark", Color: "#A05A2C", Description: "Dark skin with sun damage", Undertone: models.UndertoneWarm},

	// Mixed Heritage Variations
	{ID: "mixed-light", Name: "Mixed Light", Color: "#F0C8A8", Description: "Light skin with mixed heritage", Undertone: models.UndertoneNeutral},
	{ID: "mixed-medium", Name: "Mixed Medium", Color: "#D4A67C", Description: "Medium skin with mixed heritage", Undertone: models.UndertoneNeutral},
	{ID: "mixed-dark", Name: "Mixed Dark", Color: "#C07A4A", Description: "Medium dark skin with mixed heritage", Undertone: models.UndertoneNeutral},
	{ID: "mixed-very-dark", Name: "Mixed Very Dark", Color: "#8E4214", Description: "Dark skin with mixed heritage", Undertone: models.UndertoneNeutral},

	// Age-Related Variations
	{ID: "mature-light", Name: "Mature Light", Color: "#F4D4C3", Description: "Light skin showing signs of aging", Undertone: models.UndertoneNeutral},
	{ID: "mature-medium", Name: "Mature Medium", Color: "#D4A67C", Description: "Medium skin showing signs of aging", Undertone: models.UndertoneNeutral},
	{ID: "mature-dark", Name: "Mature Dark", Color: "#A05A2C", Description: "Dark skin showing signs of aging", Undertone: models.UndertoneNeutral},

	// Seasonal Variations
	{ID: "winter-light", Name: "Winter Light", Color: "#FFE0C8", Description: "Light skin in winter (less sun exposure)", Undertone: models.UndertoneCool},
	{ID: "summer-light", Name: "Summer Light", Color: "#F0C8A8", Description: "Light skin in summer (more sun exposure)", Undertone: models.UndertoneWarm},
	{ID: "winter-medium", Name: "Winter Medium", Color: "#E8B894", Description: "Medium skin in winter", Undertone: models.UndertoneNeutral},
	{ID: "summer-medium", Name: "Summer Medium", Color: "#D4A67C", Description: "Medium skin in summer", Undertone: models.UndertoneWarm},
	{ID: "winter-dark", Name: "Winter Dark", Color: "#A05A2C", Description: "Dark skin in winter", Undertone: models.UndertoneCool},
	{ID: "summer-dark", Name: "Summer Dark", Color: "#8E4214", Description: "Dark skin in summer", Undertone: models.UndertoneWarm},

	// Professional Makeup Industry Standards
	{ID: "foundation-ivory", Name: "Foundation Ivory", Color: "#FFF0E6", Description: "Very light foundation shade", Undertone: models.UndertoneCool},
	{ID: "foundation-porcelain", Name: "Foundation Porcelain", Color: "#FFE8D6", Description: "Light foundation shade", Undertone: models.UndertoneNeutral},
	{ID: "foundation-alabaster", Name: "Foundation Alabaster", Color: "#FFE0C8", Description: "Fair foundation shade", Undertone: models.UndertoneWarm},
	{ID: "foundation-vanilla", Name: "Foundation Vanilla", Color: "#F4D4C3", Description: "Light foundation shade", Undertone: models.UndertoneWarm},
	{ID: "foundation-bisque", Name: "Foundation Bisque", Color: "#E8B894", Description: "Medium light foundation shade", Undertone: models.UndertoneNeutral},
	{ID: "foundation-sand", Name: "Foundation Sand", Color: "#D4A67C", Description: "Medium foundation shade", Undertone: models.UndertoneWarm},
	{ID: "foundation-tan", Name: "Foundation Tan", Color: "#C88B5A", Description: "Medium dark foundation shade", Undertone: models.UndertoneWarm},
	{ID: "foundation-caramel", Name: "Foundation Caramel", Color: "#A05A2C", Description: "Dark foundation shade", Undertone: models.UndertoneWarm},
	{ID: "foundation-mocha", Name: "Foundation Mocha", Color: "#8E4214", Description: "Very dark foundation shade", Undertone: models.UndertoneCool},
	{ID: "foundation-expresso", Name: "Foundation Expresso", Color: "#5D2E1A", Description: "Darkest foundation shade", Undertone: models.UndertoneNeutral},

	// Ultra-Specific Variations
	{ID: "ultra-fair-rosy", Name: "Ultra Fair Rosy", Color: "#FFF5F0", Description: "Extremely fair skin with rosy undertones", Undertone: models.UndertoneCool},
	{ID: "ultra-fair-creamy", Name: "Ultra Fair Creamy", Color: "#FFF8F0", Description: "Extremely fair skin with creamy undertones", Undertone: models.UndertoneNeutral},
	{ID: "ultra-dark-blue", Name: "Ultra Dark Blue", Color: "#4C1E02", Description: "Very dark skin with blue undertones", Undertone: models.UndertoneCool},
	{ID: "ultra-dark-red", Name: "Ultra Dark Red", Color: "#54240A", Description: "Very dark skin with red undertones", Undertone: models.UndertoneWarm},

	// Custom sentinel, painted with a captured or profile color
	{ID: "custom", Name: "Custom Skin Tone", Color: "#D4A67C", Description: "Your unique skin tone", Undertone: models.UndertoneNeutral},
}
