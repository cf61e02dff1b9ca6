package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Extraction ExtractionConfig
	Factors    FactorConfig
	Finance    FinanceConfig
}

// ExtractionConfig holds text-extraction configuration
type ExtractionConfig struct {
	HomeCurrency    string // assumed currency when the text names none
	VendorScanLines int    // how deep the vendor fallback scans from the top
	MinItemLineLen  int    // shorter lines are never line-item candidates
}

// FactorConfig holds emission factors and conversion constants.
// The defaults are documented placeholders, not authoritative values;
// override per deployment.
type FactorConfig struct {
	GridKgPerKwh     float64 // kg CO2e per kWh of grid electricity
	DieselKgPerLiter float64
	PetrolKgPerLiter float64
	GasKgPerM3       float64 // natural gas
	PieceMassKg      float64 // assumed mass of one packaged-goods piece
}

// FinanceConfig holds the fixed analysis constants of the metrics engine.
type FinanceConfig struct {
	DiscountRate      float64
	HorizonYears      int
	LoanTenorYears    int
	DepreciationYears int
	TaxRate           float64
	CarbonPricePerTon float64
	// ESG intensity score endpoints, kg CO2e per currency unit.
	ESGBestIntensity  float64 // maps to score 100
	ESGWorstIntensity float64 // maps to score 0
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			HomeCurrency:    getEnv("HOME_CURRENCY", "NOK"),
			VendorScanLines: getEnvAsInt("VENDOR_SCAN_LINES", 12),
			MinItemLineLen:  getEnvAsInt("MIN_ITEM_LINE_LEN", 8),
		},
		Factors: FactorConfig{
			GridKgPerKwh:     getEnvAsFloat("GRID_FACTOR_KG_PER_KWH", 0.233),
			DieselKgPerLiter: getEnvAsFloat("DIESEL_FACTOR_KG_PER_LITER", 2.68),
			PetrolKgPerLiter: getEnvAsFloat("PETROL_FACTOR_KG_PER_LITER", 2.31),
			GasKgPerM3:       getEnvAsFloat("GAS_FACTOR_KG_PER_M3", 2.02),
			PieceMassKg:      getEnvAsFloat("PIECE_MASS_KG", 2.5),
		},
		Finance: FinanceConfig{
			DiscountRate:      getEnvAsFloat("DISCOUNT_RATE", 0.06),
			HorizonYears:      getEnvAsInt("ANALYSIS_HORIZON_YEARS", 15),
			LoanTenorYears:    getEnvAsInt("LOAN_TENOR_YEARS", 10),
			DepreciationYears: getEnvAsInt("DEPRECIATION_YEARS", 10),
			TaxRate:           getEnvAsFloat("TAX_RATE", 0.22),
			CarbonPricePerTon: getEnvAsFloat("CARBON_PRICE_PER_TON", 1000),
			ESGBestIntensity:  getEnvAsFloat("ESG_BEST_INTENSITY", 0.01),
			ESGWorstIntensity: getEnvAsFloat("ESG_WORST_INTENSITY", 1.0),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if len(c.Extraction.HomeCurrency) != 3 {
		return NewAppError("CONFIG_ERROR", "HOME_CURRENCY must be a 3-letter ISO 4217 code", ErrInvalidInput)
	}
	if c.Finance.DiscountRate < 0 || c.Finance.DiscountRate >= 1 {
		return NewAppError("CONFIG_ERROR", "DISCOUNT_RATE must be in [0,1)", ErrInvalidInput)
	}
	if c.Finance.HorizonYears <= 0 || c.Finance.DepreciationYears <= 0 || c.Finance.LoanTenorYears <= 0 {
		return NewAppError("CONFIG_ERROR", "analysis periods must be positive", ErrInvalidInput)
	}
	if c.Finance.ESGWorstIntensity <= c.Finance.ESGBestIntensity {
		return NewAppError("CONFIG_ERROR", "ESG_WORST_INTENSITY must exceed ESG_BEST_INTENSITY", ErrInvalidInput)
	}
	return nil
}
