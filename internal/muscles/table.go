package muscles

import "sync"

var defaultMuscles = []Muscle{
	// chest
	{"pectoralis_major", "Pectoralis Major", "chest-pec-major", GroupChest},
	{"pectoralis_minor", "Pectoralis Minor", "chest-pec-minor", GroupChest},
	{"pectoralis_major_upper", "Upper Pectoralis Major", "chest-pec-upper", GroupChest},

	// shoulders
	{"deltoid_anterior", "Anterior Deltoid", "shoulder-delt-anterior", GroupShoulders},
	{"deltoid_lateral", "Lateral Deltoid", "shoulder-delt-lateral", GroupShoulders},
	{"deltoid_posterior", "Posterior Deltoid", "shoulder-delt-posterior", GroupShoulders},
	{"deltoid_posterior_rear", "Rear Deltoid", "shoulder-delt-rear", GroupShoulders},
	{"trapezius_upper", "Upper Trapezius", "shoulder-trap-upper", GroupShoulders},
	{"trapezius_middle", "Middle Trapezius", "shoulder-trap-middle", GroupShoulders},
	{"trapezius_lower", "Lower Trapezius", "shoulder-trap-lower", GroupShoulders},

	// arms
	{"biceps_brachii", "Biceps Brachii", "arm-biceps", GroupArms},
	{"triceps_brachii", "Triceps Brachii", "arm-triceps", GroupArms},
	{"triceps_long_head", "Triceps Long Head", "arm-triceps-long", GroupArms},
	{"brachialis", "Brachialis", "arm-brachialis", GroupArms},
	{"forearm_flexors", "Forearm Flexors", "arm-forearm-flexors", GroupArms},
	{"forearm_extensors", "Forearm Extensors", "arm-forearm-extensors", GroupArms},
	{"forearms_full", "Forearms (Full)", "arm-forearms", GroupArms},

	// back
	{"latissimus_dorsi", "Latissimus Dorsi", "back-lats", GroupBack},
	{"trapezius_upper_rear", "Upper Trapezius (Rear)", "back-trap-upper-rear", GroupBack},
	{"rhomboids", "Rhomboids", "back-rhomboids", GroupBack},
	{"erector_spinae", "Erector Spinae", "back-erector-spinae", GroupBack},
	{"teres_major", "Teres Major", "back-teres-major", GroupBack},
	{"teres_minor", "Teres Minor", "back-teres-minor", GroupBack},

	// core
	{"rectus_abdominis", "Rectus Abdominis", "core-abs", GroupCore},
	{"rectus_abdominis_upper", "Upper Rectus Abdominis", "core-abs-upper", GroupCore},
	{"obliques_external", "External Obliques", "core-obliques", GroupCore},
	{"obliques_internal", "Internal Obliques", "core-obliques-internal", GroupCore},
	{"transverse_abdominis", "Transverse Abdominis", "core-transverse", GroupCore},
	{"serratus_anterior", "Serratus Anterior", "core-serratus", GroupCore},
	{"hip_flexors", "Hip Flexors", "core-hip-flexors", GroupCore},

	// legs
	{"quadriceps", "Quadriceps", "leg-quads", GroupLegs},
	{"quadriceps_upper", "Upper Quadriceps", "leg-quads-upper", GroupLegs},
	{"rectus_femoris", "Rectus Femoris", "leg-rectus-femoris", GroupLegs},
	{"vastus_lateralis", "Vastus Lateralis", "leg-vastus-lateralis", GroupLegs},
	{"vastus_medialis", "Vastus Medialis", "leg-vastus-medialis", GroupLegs},
	{"hamstrings", "Hamstrings", "leg-hamstrings", GroupLegs},
	{"biceps_femoris", "Biceps Femoris", "leg-biceps-femoris", GroupLegs},
	{"semitendinosus", "Semitendinosus", "leg-semitendinosus", GroupLegs},
	{"semimembranosus", "Semimembranosus", "leg-semimembranosus", GroupLegs},
	{"gluteus_maximus", "Gluteus Maximus", "leg-glutes", GroupLegs},
	{"gluteus_medius", "Gluteus Medius", "leg-glutes-medius", GroupLegs},
	{"gastrocnemius", "Gastrocnemius (Calves)", "leg-calves", GroupLegs},
	{"soleus", "Soleus", "leg-soleus", GroupLegs},
	{"tibialis_anterior", "Tibialis Anterior", "leg-tibialis", GroupLegs},
	{"adductors", "Adductors", "leg-adductors", GroupLegs},
}

var defaultMapping = sync.OnceValue(func() *Mapping {
	return MustNewMapping(defaultMuscles)
})

// Default returns the built-in catalog. The same *Mapping is returned on
// every call.
func Default() *Mapping {
	return defaultMapping()
}
