package demo

// Data pools for the synthetic pharmacy catalog. Categories map to
// subcategory pools so generated trees stay plausible.

var medicalConditions = []string{
	"Diabetes", "Hypertension", "Asthma", "Arthritis", "Depression", "Anxiety",
	"High Cholesterol", "Migraine", "Insomnia", "Allergies", "Heart Disease",
	"Osteoporosis", "Thyroid Disorder", "Epilepsy", "Psoriasis",
}

var allergyPool = []string{
	"Penicillin", "Sulfa drugs", "Aspirin", "Ibuprofen", "Codeine", "Morphine",
	"Latex", "Peanuts", "Shellfish", "Eggs", "Milk", "Wheat", "Soy",
}

var categoryNames = []string{
	"Pain Relief", "Antibiotics", "Diabetes Management", "Cardiovascular",
	"Respiratory", "Mental Health", "Digestive Health", "Skin Care",
	"Vitamins & Supplements", "First Aid", "Women's Health", "Men's Health",
	"Children's Health", "Elderly Care", "Emergency Medicine",
}

var subcategoryNames = map[string][]string{
	"Pain Relief":            {"Headache", "Muscle Pain", "Joint Pain", "Fever", "Migraine"},
	"Antibiotics":            {"Bacterial Infections", "Skin Infections", "Respiratory Infections"},
	"Diabetes Management":    {"Insulin", "Oral Medications", "Blood Sugar Monitoring"},
	"Cardiovascular":         {"Blood Pressure", "Cholesterol", "Heart Disease", "Blood Thinners"},
	"Respiratory":            {"Asthma", "Allergies", "Cough & Cold", "Bronchodilators"},
	"Mental Health":          {"Antidepressants", "Anti-anxiety", "Sleep Aids", "Mood Stabilizers"},
	"Digestive Health":       {"Acid Reflux", "Constipation", "Diarrhea", "Nausea"},
	"Skin Care":              {"Acne", "Eczema", "Psoriasis", "Antifungal", "Wound Care"},
	"Vitamins & Supplements": {"Multivitamins", "Minerals", "Herbal Supplements", "Protein"},
	"First Aid":              {"Bandages", "Antiseptics", "Pain Relief", "Emergency Kits"},
	"Women's Health":         {"Birth Control", "Fertility", "Menopause", "Pregnancy"},
	"Men's Health":           {"Prostate Health", "Erectile Dysfunction", "Hair Loss"},
	"Children's Health":      {"Fever & Pain", "Cough & Cold", "Vitamins", "First Aid"},
	"Elderly Care":           {"Joint Health", "Memory Support", "Bone Health", "Heart Health"},
	"Emergency Medicine":     {"Epinephrine", "Nitroglycerin", "Glucagon", "Emergency Kits"},
}

var brandNames = []string{
	"Pfizer", "Johnson & Johnson", "Novartis", "Roche", "Merck", "GlaxoSmithKline",
	"Sanofi", "AstraZeneca", "Bayer", "Eli Lilly", "Abbott", "Bristol-Myers Squibb",
	"Amgen", "Gilead Sciences", "Biogen", "Regeneron", "Moderna", "BioNTech",
}

var medicationNames = []string{
	"Acetaminophen", "Ibuprofen", "Naproxen", "Aspirin", "Tramadol", "Codeine",
	"Amoxicillin", "Azithromycin", "Ciprofloxacin", "Doxycycline", "Penicillin",
	"Metformin", "Insulin Glargine", "Insulin Lispro", "Glipizide", "Sitagliptin",
	"Lisinopril", "Amlodipine", "Atorvastatin", "Metoprolol", "Losartan",
	"Albuterol", "Fluticasone", "Montelukast", "Ipratropium", "Theophylline",
	"Sertraline", "Fluoxetine", "Escitalopram", "Bupropion", "Trazodone",
	"Omeprazole", "Ranitidine", "Lansoprazole", "Pantoprazole", "Famotidine",
	"Hydrocortisone", "Clotrimazole", "Mupirocin", "Benzoyl Peroxide", "Tretinoin",
}

var dosageForms = []string{
	"tablet", "capsule", "liquid", "cream", "ointment", "injection",
	"inhaler", "drops", "suppository", "patch",
}

var strengths = []string{
	"5mg", "10mg", "20mg", "25mg", "50mg", "100mg", "200mg", "250mg", "500mg", "1000mg",
}

var storageConditions = []string{
	"Store at room temperature (20-25C)",
	"Store in refrigerator (2-8C)",
	"Keep away from heat and light",
	"Store in a dry place",
}

var sideEffects = []string{
	"Nausea", "Dizziness", "Headache", "Drowsiness", "Diarrhea", "Constipation",
	"Rash", "Itching", "Stomach upset", "Dry mouth", "Insomnia", "Anxiety",
	"Increased heart rate", "Decreased appetite", "Weight gain", "Weight loss",
}

var contraindications = []string{
	"Pregnancy", "Breastfeeding", "Liver disease", "Kidney disease", "Heart disease",
	"Allergy to medication", "Under 18 years old", "Over 65 years old",
}

var drugInteractions = []string{
	"Blood thinners", "Antidepressants", "Blood pressure medications",
	"Diabetes medications", "Pain medications", "Antibiotics",
}

var pregnancyCategories = []string{"A", "B", "C", "D", "X", "N/A"}

var dosageFrequencies = []string{
	"Once daily", "Twice daily", "Three times daily", "As needed",
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Christopher", "Karen", "Daniel",
	"Lisa", "Matthew", "Nancy", "Anthony", "Betty", "Mark", "Sandra",
	"Steven", "Ashley", "Paul", "Emily", "Andrew", "Kimberly", "Joshua",
	"Margaret", "Kenneth", "Donna", "Kevin", "Michelle",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson",
}

var streetNames = []string{
	"123 Main St", "456 Oak Ave", "789 Elm St", "321 Pine Rd", "654 Maple Dr",
	"987 Cedar Ln", "147 Birch Blvd", "258 Walnut Way", "369 Cherry Ct",
	"741 Spruce Pl", "852 Willow Rd", "963 Ash St",
}

var cityNames = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia",
	"San Antonio", "San Diego", "Dallas", "San Jose", "Austin", "Jacksonville",
}

var stateCodes = []string{
	"NY", "CA", "IL", "TX", "AZ", "PA", "FL", "OH", "NC", "GA", "MI", "NJ",
}

var zipCodes = []string{
	"10001", "90001", "60601", "77001", "85001", "19101", "78201", "92101",
	"75201", "95101", "73301", "32201",
}

var reviewTitles = []string{
	"Great medication", "Effective treatment", "Works as expected",
	"Highly recommended", "Good quality", "Fast relief", "Easy to use",
	"Worth the price", "Reliable product", "Excellent results",
	"Satisfied customer", "Good value", "Quick delivery", "Quality product",
}

var reviewComments = []string{
	"This medication has been very effective for my condition.",
	"I've been using this for a while and it works great.",
	"Fast acting and reliable medication.",
	"Good quality product, would recommend.",
	"Helps with my symptoms effectively.",
	"Easy to take and no side effects.",
	"Great value for the money.",
	"Works exactly as described.",
	"Very satisfied with this product.",
	"Quality medication at a reasonable price.",
	"Helped me manage my condition better.",
	"Reliable and consistent results.",
}

var productTags = []string{
	"pain relief", "fever", "inflammation", "headache", "muscle pain",
}
