package diagnosis

// Info is the classified outcome for a disease label.
type Info struct {
	Type       string
	Severity   string
	Fertilizer string
	Treatment  []string
}

// diseaseTable maps exact crop-disease identifiers (species + condition
// keys produced by the leaf classifier) to their display record. Labels
// not present here fall through to the substring heuristic.
var diseaseTable = map[string]Info{
	// ---------------- Apple ----------------
	"Apple___Apple_scab": {
		Type:       "fungal",
		Fertilizer: "NPK 10-10-10",
		Severity:   "Medium",
		Treatment: []string{
			"Apply Captan or Mancozeb fungicide.",
			"Prune infected branches.",
			"Improve air circulation.",
		},
	},
	"Apple___Black_rot": {
		Type:       "fungal",
		Fertilizer: "NPK 12-12-12",
		Severity:   "High",
		Treatment: []string{
			"Remove infected fruits immediately.",
			"Apply fungicide spray weekly.",
			"Sanitize pruning tools.",
		},
	},
	"Apple___Cedar_apple_rust": {
		Type:       "fungal",
		Fertilizer: "NPK 10-10-10",
		Severity:   "Medium",
		Treatment: []string{
			"Apply Myclobutanil fungicide.",
			"Remove nearby cedar trees if possible.",
			"Prune infected leaves.",
		},
	},
	"Apple___healthy": {
		Type:       "healthy",
		Fertilizer: "Balanced NPK 10-10-10",
		Severity:   "None",
		Treatment: []string{
			"Crop appears healthy.",
			"Maintain regular irrigation and fertilization.",
		},
	},

	// ---------------- Tomato ----------------
	"Tomato___Target_Spot": {
		Type:       "fungal",
		Fertilizer: "NPK 10-10-10",
		Severity:   "High",
		Treatment: []string{
			"Apply Chlorothalonil fungicide.",
			"Remove infected leaves.",
			"Avoid overhead irrigation.",
			"Improve drainage.",
		},
	},
	"Tomato___Early_blight": {
		Type:       "fungal",
		Fertilizer: "NPK 12-12-12",
		Severity:   "Medium",
		Treatment: []string{
			"Apply Mancozeb spray.",
			"Remove infected lower leaves.",
			"Avoid excess nitrogen fertilizer.",
		},
	},
	"Tomato___Late_blight": {
		Type:       "fungal",
		Fertilizer: "NPK 10-10-10",
		Severity:   "High",
		Treatment: []string{
			"Apply Metalaxyl fungicide.",
			"Remove infected plants immediately.",
			"Avoid excess moisture.",
		},
	},
	"Tomato___healthy": {
		Type:       "healthy",
		Fertilizer: "NPK 10-10-10",
		Severity:   "None",
		Treatment: []string{
			"Crop is healthy.",
			"Maintain balanced fertilizer schedule.",
		},
	},
	"Tomato___Tomato_Yellow_Leaf_Curl_Virus": {
		Type:       "viral",
		Fertilizer: "Balanced NPK + Micronutrients",
		Severity:   "High",
		Treatment: []string{
			"Remove infected plants immediately.",
			"Control whiteflies using insecticides.",
			"Use virus-resistant varieties.",
			"Maintain field hygiene.",
		},
	},
	"Tomato___Leaf_Mold": {
		Type:       "fungal",
		Fertilizer: "NPK 10-10-10",
		Severity:   "Medium",
		Treatment: []string{
			"Apply fungicide such as Chlorothalonil.",
			"Remove infected leaves immediately.",
			"Improve air circulation.",
			"Avoid excessive humidity.",
		},
	},

	// ---------------- Pepper ----------------
	"Pepper,_bell___Bacterial_spot": {
		Type:       "bacterial",
		Fertilizer: "NPK 10-10-10",
		Severity:   "Medium",
		Treatment: []string{
			"Apply copper-based bactericide.",
			"Remove infected leaves.",
			"Avoid overhead irrigation.",
		},
	},
	"Pepper,_bell___healthy": {
		Type:       "healthy",
		Fertilizer: "Balanced NPK",
		Severity:   "None",
		Treatment: []string{
			"Crop is healthy.",
			"Continue proper irrigation.",
		},
	},

	// ---------------- Corn ----------------
	"Corn_(maize)___Common_rust_": {
		Type:       "fungal",
		Fertilizer: "NPK 10-10-10",
		Severity:   "Medium",
		Treatment: []string{
			"Apply fungicide such as Mancozeb.",
			"Remove infected leaves if severe.",
			"Ensure proper spacing for airflow.",
			"Avoid excess nitrogen fertilizer.",
		},
	},

	// ---------------- Strawberry ----------------
	"Strawberry___Leaf_scorch": {
		Type:       "fungal",
		Fertilizer: "NPK 10-10-10",
		Severity:   "Medium",
		Treatment: []string{
			"Apply appropriate fungicide such as Captan or Mancozeb.",
			"Remove infected leaves immediately.",
			"Avoid overhead irrigation.",
			"Improve air circulation around plants.",
		},
	},
}

// Lookup returns the exact-key record for a known classifier label.
func Lookup(label string) (Info, bool) {
	info, ok := diseaseTable[label]
	return info, ok
}
