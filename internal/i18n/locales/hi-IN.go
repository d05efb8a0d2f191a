package locales

// MessagesHiIN contains Hindi translations.
var MessagesHiIN = map[string]string{
	// Common
	"common.success": "सफल",
	"common.error":   "त्रुटि",

	// Auth
	"auth.invalid_credentials": "ईमेल या पासवर्ड गलत है",
	"auth.session_expired":     "सत्र समाप्त हो गया, कृपया फिर से साइन इन करें",
	"auth.unauthorized":        "प्रमाणीकरण आवश्यक है",
	"auth.forbidden":           "आपको यह कार्य करने की अनुमति नहीं है",
	"auth.account_disabled":    "यह खाता निष्क्रिय है",
	"auth.logged_out":          "साइन आउट हो गया",

	// Validation
	"validation.required":        "आवश्यक फ़ील्ड अनुपस्थित है",
	"validation.result_range":    "परिणाम 0 से 99 के बीच पूर्णांक होना चाहिए",
	"validation.invalid_date":    "अमान्य तिथि, DD/MM/YYYY अपेक्षित है",
	"validation.invalid_json":    "अनुरोध में अमान्य JSON",
	"validation.password_length": "पासवर्ड कम से कम 8 अक्षरों का होना चाहिए",

	// Games
	"game.not_found":      "गेम नहीं मिला",
	"game.duplicate":      "इस नाम या कोड का गेम पहले से मौजूद है",
	"game.created":        "गेम बनाया गया",
	"game.updated":        "गेम अपडेट हुआ",
	"game.deleted":        "गेम हटाया गया",
	"game.result_set":     "परिणाम प्रकाशित हुआ",
	"game.result_cleared": "परिणाम हटाया गया",

	// Migration
	"migration.completed":        "दैनिक माइग्रेशन पूर्ण हुआ",
	"migration.backup_not_found": "माइग्रेशन बैकअप नहीं मिला",
	"migration.already_restored": "यह बैकअप पहले ही बहाल किया जा चुका है",
	"migration.restored":         "माइग्रेशन बहाल हुआ",

	// Users
	"user.not_found":      "उपयोगकर्ता नहीं मिला",
	"user.duplicate":      "इस ईमेल का उपयोगकर्ता पहले से मौजूद है",
	"user.created":        "उपयोगकर्ता बनाया गया",
	"user.updated":        "उपयोगकर्ता अपडेट हुआ",
	"user.password_set":   "पासवर्ड अपडेट हुआ",
	"user.reset_sent":     "यदि ईमेल मौजूद है, तो रीसेट लिंक भेज दिया गया है",
	"user.reset_invalid":  "रीसेट टोकन अमान्य या समाप्त है",
	"user.wrong_password": "वर्तमान पासवर्ड गलत है",

	// Imports
	"import.completed":   "आयात पूर्ण हुआ",
	"import.file_failed": "फ़ाइल अस्वीकृत: सूचीबद्ध पंक्तियाँ ठीक करके पुनः प्रयास करें",
	"import.fetch_error": "अपस्ट्रीम स्रोत से परिणाम लाने में विफल",
}
