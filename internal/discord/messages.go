package discord

// Friendly message constants for Discord responses
const (
	// Recipes
	MsgRecipeNotFound   = "📜 **Recipe Not Found**\nMaybe check the spelling?"
	MsgRecipeLocked     = "🔒 **Recipe Locked**\nYou haven't discovered that recipe yet."
	MsgNotEligible      = "🧪 **Can't Craft That**\nYou're missing ingredients, tools, or profession level."
	MsgCraftInProgress  = "⏳ **Busy Crafting**\nWait for the current craft to finish first."
	MsgNoRecipes        = "You don't know any recipes yet."
	MsgNoRecipesInGroup = "You don't know any %s recipes yet."

	// Items & Inventory
	MsgItemNotFound   = "❓ **Item Not Found**\nMaybe check the spelling?"
	MsgNotEnoughItems = "🎒 **Not Enough Items**\nYou don't have enough of that item."
	MsgEmptyInventory = "🎒 Your bag is empty."

	// Professions
	MsgProfessionNotFound = "🛠️ **Profession Not Found**"
	MsgNoProfessions      = "No professions are being tracked."

	// Input
	MsgDiscoverUsage = "Usage: `/discover <recipe name> <true|false>`"
	MsgInvalidInput  = "⚠️ **Invalid Input**\nPick one of the suggestions and try again."

	MsgGenericError = "❌ Something went wrong."
)

// Embed colors
const (
	ColorInfo    = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorFailure = 0xe74c3c
	ColorCraft   = 0xe67e22
	ColorAdmin   = 0x95a5a6
)

// Footer constants for standardized embed footers.
const (
	FooterRecipeCraft      = "RecipeCraft"
	FooterRecipeCraftAdmin = "RecipeCraft Admin"
)

// Command names
const (
	CmdRecipes     = "recipes"
	CmdRecipe      = "recipe"
	CmdCraft       = "craft"
	CmdCraftStatus = "craft-status"
	CmdDiscover    = "discover"
	CmdUse         = "use"
	CmdInventory   = "inventory"
	CmdProfessions = "professions"
	CmdSave        = "save"
)

// Autocomplete limits
const (
	maxAutocompleteChoices = 25
	recipeCacheSize        = 64
	recipeCacheKey         = "discovered"
)
