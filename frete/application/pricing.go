package application

import "github.com/shopspring/decimal"

// DefaultTaxPercent é o ICMS fixo aplicado pela "tabela".
const DefaultTaxPercent = 6

var hundred = decimal.NewFromInt(100)

// PolicyOne calcula o total da "tabela":
//
//	seguro   = nota * seguro% / 100
//	faixa    = peso * preço/kg
//	subtotal = seguro + fixa + faixa
//	total    = subtotal / ((100 - icms) / 100)
func PolicyOne(insurancePercent int, declaredValue decimal.Decimal, fixedFee int, weight, pricePerKg, taxPercent decimal.Decimal) decimal.Decimal {
	insurance := percentOf(declaredValue, insurancePercent)
	weightCost := weight.Mul(pricePerKg)
	subtotal := insurance.Add(decimal.NewFromInt(int64(fixedFee))).Add(weightCost)
	return grossUp(subtotal, taxPercent)
}

// PolicyTwo calcula o total da "tabela2". Não há taxa fixa; a alfândega
// incide sobre seguro + faixa antes do ICMS.
func PolicyTwo(insurancePercent int, declaredValue, weight, pricePerKg decimal.Decimal, customsPercent int, taxPercent decimal.Decimal) decimal.Decimal {
	insurance := percentOf(declaredValue, insurancePercent)
	weightCost := weight.Mul(pricePerKg)
	subtotal := insurance.Add(weightCost)
	subtotal = subtotal.Add(percentOf(subtotal, customsPercent))
	return grossUp(subtotal, taxPercent)
}

func percentOf(v decimal.Decimal, percent int) decimal.Decimal {
	return v.Mul(decimal.NewFromInt(int64(percent))).Div(hundred)
}

// grossUp embute o imposto no preço final (o ICMS é uma fração do total,
// não do subtotal) e arredonda para cima no centavo.
//
// Assume taxPercent < 100; o Quoter rejeita valores maiores antes.
func grossUp(subtotal, taxPercent decimal.Decimal) decimal.Decimal {
	total := subtotal.Div(hundred.Sub(taxPercent).Div(hundred))
	return roundUpCents(total)
}

// roundUpCents é o "total + 0.005 arredondado em 2 casas" das tabelas de
// referência, em aritmética decimal: qualquer fração de centavo sobe.
// Totais já exatos em centavos ficam como estão.
func roundUpCents(v decimal.Decimal) decimal.Decimal {
	return v.RoundCeil(2)
}
