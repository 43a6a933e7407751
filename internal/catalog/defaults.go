package catalog

// Built-in vanilla tables. Only a working subset of the game's registry is
// declared here; hosts with the full registry supply their own catalog.

var defaultMaterials = []string{
	"AIR", "DIRT", "GRASS_BLOCK", "STONE", "COBBLESTONE", "SMOOTH_STONE",
	"STONE_BRICKS", "STONE_SLAB", "STONE_STAIRS", "SAND", "GLASS", "GRAVEL",
	"FLINT", "CLAY_BALL", "BRICK", "DIAMOND", "EMERALD", "GOLD_INGOT",
	"IRON_INGOT", "IRON_ORE", "RAW_IRON", "GOLD_ORE", "RAW_GOLD", "NETHERITE_INGOT",
	"NETHERITE_UPGRADE_SMITHING_TEMPLATE", "DIAMOND_SWORD", "DIAMOND_PICKAXE",
	"DIAMOND_CHESTPLATE", "NETHERITE_SWORD", "NETHERITE_PICKAXE",
	"NETHERITE_CHESTPLATE", "STICK", "TORCH", "COAL", "CHARCOAL", "PAPER",
	"BOOK", "LEATHER", "STRING", "FEATHER", "ARROW", "BOW", "BEEF",
	"COOKED_BEEF", "PORKCHOP", "COOKED_PORKCHOP", "POTATO", "BAKED_POTATO",
	"KELP", "DRIED_KELP", "CRAFTING_TABLE", "CHEST", "FURNACE", "REDSTONE",
	"WHITE_WOOL", "RED_WOOL", "BLUE_WOOL", "BLACK_WOOL",
}

var defaultTags = map[string][]string{
	"planks": {
		"OAK_PLANKS", "SPRUCE_PLANKS", "BIRCH_PLANKS", "JUNGLE_PLANKS",
		"ACACIA_PLANKS", "DARK_OAK_PLANKS", "MANGROVE_PLANKS", "CHERRY_PLANKS",
	},
	"logs": {
		"OAK_LOG", "SPRUCE_LOG", "BIRCH_LOG", "JUNGLE_LOG", "ACACIA_LOG",
		"DARK_OAK_LOG", "MANGROVE_LOG", "CHERRY_LOG",
	},
	"wool":                     {"WHITE_WOOL", "RED_WOOL", "BLUE_WOOL", "BLACK_WOOL"},
	"coals":                    {"COAL", "CHARCOAL"},
	"stone_crafting_materials": {"COBBLESTONE", "BLACKSTONE", "COBBLED_DEEPSLATE"},
	"iron_ores":                {"IRON_ORE", "DEEPSLATE_IRON_ORE"},
	"gold_ores":                {"GOLD_ORE", "DEEPSLATE_GOLD_ORE", "NETHER_GOLD_ORE"},
	"sand":                     {"SAND", "RED_SAND", "SUSPICIOUS_SAND"},
}

func defaultOptions() []Option {
	opts := []Option{WithMaterials(defaultMaterials...)}
	for name, members := range defaultTags {
		opts = append(opts, WithTag(name, members...))
	}
	return opts
}
