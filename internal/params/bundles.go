// Package params defines the typed parameter bundles for every filter block
// and the layered resolver that builds them from compiled-in defaults,
// profile data, and call-site overrides.
//
// A bundle is immutable by convention: Resolve returns a fresh value that is
// fully determined before any frame is processed and is shared read-only
// across concurrent frame evaluations. Field yaml tags are the external
// setting names used in settings.yaml profiles and overrides.
package params

// AA holds anti-aliasing and rescale-mask parameters (block "aa").
type AA struct {
	DescHeight   int     `yaml:"desc_h"`
	DescStrength float64 `yaml:"desc_str"`
	Kernel       string  `yaml:"kernel"`
	BicubicB     float64 `yaml:"bic_b"`
	BicubicC     float64 `yaml:"bic_c"`
	Taps         int     `yaml:"taps"`

	EEDI3Only bool `yaml:"eedi3_only"`

	NRad  int     `yaml:"nrad"`
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Gamma int     `yaml:"gamma"`

	RescBicubic bool   `yaml:"resc_bc"`
	RescMaskThr int    `yaml:"resc_mthr"`
	RescExpr    string `yaml:"resc_expr"`

	UVDescHeight   int     `yaml:"uv_desc_h"`
	UVDescStrength float64 `yaml:"uv_desc_str"`
}

// DefaultAA returns the compiled-in defaults for block "aa".
func DefaultAA() AA {
	return AA{
		DescStrength:   0.32,
		Kernel:         "bicubic",
		BicubicB:       1.0 / 3.0,
		BicubicC:       1.0 / 3.0,
		NRad:           2,
		Alpha:          0.2,
		Beta:           0.25,
		Gamma:          1000,
		RescMaskThr:    40,
		UVDescStrength: 0.32,
	}
}

// AdaptiveZone is one ordered entry of an adaptive denoise/deband zone list.
// Zones are expressed as a YAML sequence (not a mapping) because their order
// drives the mask fold and must survive decoding.
type AdaptiveZone struct {
	Name       string  `yaml:"name"`
	DebandMode int     `yaml:"db_mode"`
	DebandThr  float64 `yaml:"db_thr"`
	SmThr      int     `yaml:"sm_thr"`
	SmPrefMode int     `yaml:"sm_pref_mode"`
	Scaling    float64 `yaml:"scaling"`
}

// Filter holds denoise/deband/grain parameters (block "filt").
type Filter struct {
	RetinexSigma float64 `yaml:"rt_sigma"`

	// Denoise.
	DenoiseMode     string         `yaml:"dn_mode"` // "smdegrain", "bm3d", or "" for none
	TTSmooth        bool           `yaml:"dn_ttsmooth"`
	BM3DSigma       float64        `yaml:"bm_sigma"`
	BM3DRadius      int            `yaml:"bm_radius"`
	SmThr           []int          `yaml:"sm_thr"` // per-plane thresholds; short lists repeat the last entry
	SmPrefMode      int            `yaml:"sm_pref_mode"`
	DenoisePref     bool           `yaml:"dn_pref"`
	DenoiseScaling  float64        `yaml:"dn_pref_scaling"`
	DenoiseMul      int            `yaml:"dn_pref_mul"`
	DenoiseSaveUV   bool           `yaml:"dn_save_uv"`
	DenoiseAdaptive []AdaptiveZone `yaml:"dn_adaptive"`
	DenoiseExpr     string         `yaml:"dn_expr"`

	// Contrasharp.
	CSMode  int     `yaml:"cs_mode"`
	CSValue float64 `yaml:"cs_val"`
	CSMerge int     `yaml:"cs_merge"`

	// Deband.
	DebandThr          float64        `yaml:"db_thr"` // 0 disables debanding
	DebandMode         int            `yaml:"db_mode"`
	DebandGFMode       int            `yaml:"db_gf_mode"`
	DebandRTMode       int            `yaml:"db_rt_mode"`
	DebandPref         bool           `yaml:"db_pref"`
	DebandDetail       int            `yaml:"db_det"`
	DebandGrain        int            `yaml:"db_grain"`
	DebandRange        int            `yaml:"db_range"`
	DebandYUV          bool           `yaml:"db_yuv"`
	DebandSaveBlack    int            `yaml:"db_saveblack"`
	DebandSaveBlackTol int            `yaml:"db_saveblack_tolerance"`
	DebandAdaptive     []AdaptiveZone `yaml:"db_adaptive"`
	DebandExpr         string         `yaml:"db_expr"`

	// Adaptive grain.
	GrainStr          float64 `yaml:"ag_str"`
	GrainScaling      float64 `yaml:"ag_scaling"`
	GrainSaveBlack    int     `yaml:"ag_saveblack"`
	GrainSaveBlackTol int     `yaml:"ag_saveblack_tolerance"`
}

// DefaultFilter returns the compiled-in defaults for block "filt".
func DefaultFilter() Filter {
	return Filter{
		RetinexSigma:       1.0,
		DenoiseMode:        "smdegrain",
		BM3DSigma:          2.0,
		BM3DRadius:         1,
		SmThr:              []int{40},
		SmPrefMode:         1,
		CSMode:             1,
		CSValue:            0.5,
		DebandThr:          2.1,
		DebandMode:         3,
		DebandGFMode:       2,
		DebandRTMode:       2,
		DebandDetail:       64,
		DebandGrain:        48,
		DebandRange:        15,
		DebandSaveBlack:    1,
		DebandSaveBlackTol: 2,
		GrainScaling:       24.0,
		GrainSaveBlack:     1,
		GrainSaveBlackTol:  2,
	}
}

// Dehalo holds halo-removal parameters (block "dehalo").
type Dehalo struct {
	RX               float64 `yaml:"rx"`
	DarkStr          float64 `yaml:"darkstr"`
	BrightStr        float64 `yaml:"brightstr"`
	EdgeMode         string  `yaml:"mode"`
	MaxC             int     `yaml:"max_c"`
	MinC             int     `yaml:"min_c"`
	MaskFromFiltered bool    `yaml:"mask_from_filtred"`
}

// DefaultDehalo returns the compiled-in defaults for block "dehalo".
func DefaultDehalo() Dehalo {
	return Dehalo{
		RX:               2.0,
		BrightStr:        0.5,
		EdgeMode:         "kirsch",
		MaxC:             3,
		MinC:             1,
		MaskFromFiltered: true,
	}
}

// Repair holds edge-repair parameters (block "repair").
type Repair struct {
	EdgeCleanArgs    map[string]int `yaml:"edgclr_args"`
	DeringArgs       map[string]int `yaml:"dering_args"`
	EdgeMode         string         `yaml:"mode"`
	MaxC             int            `yaml:"max_c"`
	MinC             int            `yaml:"min_c"`
	MaskFromFiltered bool           `yaml:"mask_from_filtred"`
}

// DefaultRepair returns the compiled-in defaults for block "repair".
func DefaultRepair() Repair {
	return Repair{
		EdgeCleanArgs: map[string]int{"strength": 10, "rmode": 13, "smode": 1},
		DeringArgs:    map[string]int{"mrad": 2, "mthr": 70, "thr": 12, "darkthr": 3},
		EdgeMode:      "kirsch",
		MaxC:          3,
		MinC:          1,
	}
}

// LineDark holds line-darkening parameters (block "linedark").
type LineDark struct {
	Args map[string]int `yaml:"linedark_args"`
}

// DefaultLineDark returns the compiled-in defaults for block "linedark".
func DefaultLineDark() LineDark { return LineDark{} }

// Sharp holds sharpening parameters (block "sharp").
type Sharp struct {
	Mode     string  `yaml:"mode"`
	Strength float64 `yaml:"sharp"`
	MaskMode string  `yaml:"mask_mode"`
	MaskExpr string  `yaml:"mask_expr"`
	YUV      bool    `yaml:"yuv"`
}

// DefaultSharp returns the compiled-in defaults for block "sharp".
func DefaultSharp() Sharp {
	return Sharp{Mode: "cas", Strength: 0.1, MaskMode: "sobel"}
}

// EdgeFix holds border-repair parameters (block "edgefix"). The directional
// fields take a single width or a per-plane list; short lists are padded
// with zeros by the consumer.
type EdgeFix struct {
	CropArgs map[string]int `yaml:"crop_args"`
	Top      []int          `yaml:"top"`
	Bottom   []int          `yaml:"bottom"`
	Left     []int          `yaml:"left"`
	Right    []int          `yaml:"right"`
	Radius   []int          `yaml:"radius"`
	YUV      bool           `yaml:"yuv"`
}

// DefaultEdgeFix returns the compiled-in defaults for block "edgefix".
func DefaultEdgeFix() EdgeFix { return EdgeFix{} }

// PerPlane reports whether any directional field carries per-plane values,
// which switches the consumer to plane-wise processing.
func (e EdgeFix) PerPlane() bool {
	for _, vals := range [][]int{e.Top, e.Bottom, e.Left, e.Right, e.Radius} {
		if len(vals) > 1 {
			return true
		}
	}
	return false
}

// Crop holds crop offsets (block "crop").
type Crop struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// DefaultCrop returns the compiled-in defaults for block "crop".
func DefaultCrop() Crop { return Crop{} }

// QTGMC holds stabilization parameters (block "qtgmc").
type QTGMC struct {
	K            float64 `yaml:"k"`
	ThSAD1       float64 `yaml:"thsad1"`
	ThSAD2       float64 `yaml:"thsad2"`
	ThSCD1       float64 `yaml:"thscd1"`
	ThSCD2       float64 `yaml:"thscd2"`
	InputType    int     `yaml:"input_type"`
	Preset       string  `yaml:"preset"`
	MatchEnhance float64 `yaml:"match_enhance"`
	Sharpness    float64 `yaml:"sharp"`
}

// DefaultQTGMC returns the compiled-in defaults for block "qtgmc".
func DefaultQTGMC() QTGMC {
	return QTGMC{
		K:            1,
		ThSAD1:       640,
		ThSAD2:       256,
		ThSCD1:       180,
		ThSCD2:       98,
		InputType:    1,
		Preset:       "placebo",
		MatchEnhance: 0.95,
		Sharpness:    0.2,
	}
}

// Temporal holds the symmetric-window parameters for per-frame candidate
// selection (block "temporal"). The radius bounds the tie-break search;
// 3 is the domain-tuned value the decision rule was designed around.
type Temporal struct {
	Radius int `yaml:"radius"`
}

// DefaultTemporal returns the compiled-in defaults for block "temporal".
func DefaultTemporal() Temporal {
	return Temporal{Radius: 3}
}
