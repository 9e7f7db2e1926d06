package errors

// ErrorConfig error handling middleware ayarları
type ErrorConfig struct {
	ShowStackTrace  bool           // Stack trace'i response'da göster mi (sadece development)
	CustomErrorMap  map[int]string // Status code'a göre custom mesajlar
	IncludeHeaders  []string       // Panic sonrası korunacak header'lar
	EnablePanicLogs bool           // Panic stack trace'ini logla
	MaxErrorLength  int            // Error mesajının maksimum uzunluğu
}

// DefaultErrorConfig varsayılan error handling ayarları
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		ShowStackTrace: false,
		CustomErrorMap: map[int]string{
			400: "Geçersiz istek. Lütfen parametrelerinizi kontrol edin.",
			404: "Aradığınız kaynak bulunamadı.",
			405: "HTTP metodu bu endpoint için desteklenmiyor.",
			422: "İşlem puan kurallarına uymuyor.",
			429: "Çok fazla istek. Lütfen daha sonra tekrar deneyin.",
			500: "Sunucu hatası. Bu durum teknik ekibimize bildirildi.",
			503: "Servis geçici olarak kullanılamıyor. Lütfen daha sonra deneyin.",
		},
		IncludeHeaders:  []string{"X-Request-Id", "X-Ratelimit-Remaining"},
		EnablePanicLogs: true,
		MaxErrorLength:  500,
	}
}

// DevelopmentErrorConfig development ortamı için ayarlar
func DevelopmentErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = true
	config.MaxErrorLength = 2000
	return config
}

// ProductionErrorConfig production ortamı için güvenli ayarlar
func ProductionErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.CustomErrorMap[500] = "Bir hata oluştu. Teknik ekibimiz bilgilendirildi."
	config.MaxErrorLength = 200
	return config
}

// ForEnv APP_ENV değerine göre config seçer
func ForEnv(env string) *ErrorConfig {
	switch env {
	case "development":
		return DevelopmentErrorConfig()
	case "production":
		return ProductionErrorConfig()
	default:
		return DefaultErrorConfig()
	}
}
