package gas

// ISO 15099 Annex B の気体物性係数

// 一般気体定数, J/(kmol K)
const UniversalGasConstant = 8314.462

// a + b T + c T^2
type Coefficients struct {
	A float64
	B float64
	C float64
}

func (c Coefficients) at(t float64) float64 {
	return c.A + c.B*t + c.C*t*t
}

// 純気体の物性データ
type Data struct {
	Name              string
	MolecularWeight   float64      // 分子量, kg/kmol
	SpecificHeatRatio float64      // 比熱比, -
	Conductivity      Coefficients // 熱伝導率, W/mK
	Viscosity         Coefficients // 粘性係数, Pa s
	SpecificHeat      Coefficients // 定圧比熱, J/kgK
}

var (
	Air = Data{
		Name:              "air",
		MolecularWeight:   28.97,
		SpecificHeatRatio: 1.4,
		Conductivity:      Coefficients{2.873e-3, 7.760e-5, 0},
		Viscosity:         Coefficients{3.723e-6, 4.940e-8, 0},
		SpecificHeat:      Coefficients{1002.7370, 1.2324e-2, 0},
	}
	Argon = Data{
		Name:              "argon",
		MolecularWeight:   39.948,
		SpecificHeatRatio: 1.67,
		Conductivity:      Coefficients{2.285e-3, 5.149e-5, 0},
		Viscosity:         Coefficients{3.379e-6, 6.451e-8, 0},
		SpecificHeat:      Coefficients{521.9285, 0, 0},
	}
	Krypton = Data{
		Name:              "krypton",
		MolecularWeight:   83.8,
		SpecificHeatRatio: 1.68,
		Conductivity:      Coefficients{9.443e-4, 2.826e-5, 0},
		Viscosity:         Coefficients{2.213e-6, 7.777e-8, 0},
		SpecificHeat:      Coefficients{248.0907, 0, 0},
	}
	Xenon = Data{
		Name:              "xenon",
		MolecularWeight:   131.3,
		SpecificHeatRatio: 1.66,
		Conductivity:      Coefficients{4.538e-4, 1.723e-5, 0},
		Viscosity:         Coefficients{1.069e-6, 7.414e-8, 0},
		SpecificHeat:      Coefficients{158.3397, 0, 0},
	}
)

/*
名前から純気体の物性データを取得する。

	Args:
		name: "air", "argon", "krypton", "xenon"
*/
func DataFromString(name string) (Data, error) {
	switch name {
	case "air":
		return Air, nil
	case "argon":
		return Argon, nil
	case "krypton":
		return Krypton, nil
	case "xenon":
		return Xenon, nil
	default:
		return Data{}, ErrUnknownGas
	}
}
