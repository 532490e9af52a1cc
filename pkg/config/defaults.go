package config

// DefaultConfig returns the built-in routing configuration. Keyword lists
// cover English, Chinese, Japanese, Russian, and German.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			DimensionWeights: map[string]float64{
				DimTokenCount:          0.08,
				DimCodePresence:        0.15,
				DimReasoningMarkers:    0.18,
				DimTechnicalTerms:      0.10,
				DimCreativeMarkers:     0.05,
				DimSimpleIndicators:    0.02,
				DimMultiStepPatterns:   0.12,
				DimQuestionComplexity:  0.05,
				DimImperativeVerbs:     0.03,
				DimConstraintCount:     0.04,
				DimOutputFormat:        0.03,
				DimReferenceComplexity: 0.02,
				DimNegationComplexity:  0.01,
				DimDomainSpecificity:   0.02,
			},
			TierBoundaries: TierBoundaries{
				SimpleMedium:     0.0,
				MediumComplex:    0.18,
				ComplexReasoning: 0.4,
			},
			TokenThresholds: TokenThresholds{
				Simple:  50,
				Complex: 500,
			},
			ConfidenceSteepness: 12,
			ConfidenceThreshold: 0.7,
			AgenticWeight:       0.04,
			Keywords: KeywordSets{
				Code: []string{
					"function", "class", "import", "def", "select", "async", "await",
					"const", "let", "var", "return", "```",
					"函数", "类", "导入", "定义", "查询", "异步", "等待", "常量", "变量", "返回",
					"関数", "クラス", "インポート", "非同期", "定数", "変数",
					"функция", "класс", "импорт", "определ", "запрос", "асинхронный",
					"ожидать", "константа", "переменная", "вернуть",
					"funktion", "klasse", "importieren", "definieren", "abfrage",
					"asynchron", "erwarten", "konstante", "variable", "zurückgeben",
				},
				Reasoning: []string{
					"prove", "theorem", "derive", "step by step", "chain of thought",
					"formally", "mathematical", "proof", "logically",
					"证明", "定理", "推导", "逐步", "思维链", "形式化", "数学", "逻辑",
					"証明", "定理", "導出", "ステップバイステップ", "論理的",
					"доказать", "докажи", "доказательств", "теорема", "вывести",
					"шаг за шагом", "пошагово", "поэтапно", "цепочка рассуждений",
					"рассуждени", "формально", "математически", "логически",
					"beweisen", "beweis", "theorem", "ableiten", "schritt für schritt",
					"gedankenkette", "formal", "mathematisch", "logisch",
				},
				Simple: []string{
					"what is", "define", "translate", "hello", "yes or no", "capital of",
					"how old", "who is", "when was",
					"什么是", "定义", "翻译", "你好", "是否", "首都", "多大", "谁是", "何时",
					"とは", "定義", "翻訳", "こんにちは", "はいかいいえ", "首都", "誰",
					"что такое", "определение", "перевести", "переведи", "привет",
					"да или нет", "столица", "сколько лет", "кто такой", "когда", "объясни",
					"was ist", "definiere", "übersetze", "hallo", "ja oder nein",
					"hauptstadt", "wie alt", "wer ist", "wann", "erkläre",
				},
				Technical: []string{
					"algorithm", "optimize", "architecture", "distributed", "kubernetes",
					"microservice", "database", "infrastructure",
					"算法", "优化", "架构", "分布式", "微服务", "数据库", "基础设施",
					"アルゴリズム", "最適化", "アーキテクチャ", "分散", "マイクロサービス", "データベース",
					"алгоритм", "оптимизировать", "оптимизаци", "оптимизируй", "архитектура",
					"распределённый", "микросервис", "база данных", "インфраструктура",
					"algorithmus", "optimieren", "architektur", "verteilt", "kubernetes",
					"mikroservice", "datenbank", "infrastruktur",
				},
				Creative: []string{
					"story", "poem", "compose", "brainstorm", "creative", "imagine", "write a",
					"故事", "诗", "创作", "头脑风暴", "创意", "想象", "写一个",
					"物語", "詩", "作曲", "ブレインストーム", "創造的", "想像",
					"история", "рассказ", "стихотворение", "сочинить", "сочини",
					"мозговой штурм", "творческий", "представить", "придумай", "напиши",
					"geschichte", "gedicht", "komponieren", "brainstorming", "kreativ",
					"vorstellen", "schreibe", "erzählung",
				},
				Imperative: []string{
					"build", "create", "implement", "design", "develop", "construct",
					"generate", "deploy", "configure", "set up",
					"构建", "创建", "实现", "设计", "开发", "生成", "部署", "配置", "设置",
					"構築", "作成", "実装", "設計", "開発", "生成", "デプロイ", "設定",
					"построить", "построй", "создать", "создай", "реализовать", "реализуй",
					"спроектировать", "разработать", "разработай", "сконструировать",
					"сгенерировать", "сгенерируй", "развернуть", "разверни", "настроить", "настрой",
					"erstellen", "bauen", "implementieren", "entwerfen", "entwickeln",
					"konstruieren", "generieren", "bereitstellen", "konfigurieren", "einrichten",
				},
				Constraint: []string{
					"under", "at most", "at least", "within", "no more than", "o(",
					"maximum", "minimum", "limit", "budget",
					"不超过", "至少", "最多", "在内", "最大", "最小", "限制", "预算",
					"以下", "最大", "最小", "制限", "予算",
					"не более", "не менее", "как минимум", "в пределах", "максимум",
					"минимум", "ограничение", "бюджет",
					"höchstens", "mindestens", "innerhalb", "nicht mehr als",
					"maximal", "minimal", "grenze", "budget",
				},
				OutputFormat: []string{
					"json", "yaml", "xml", "table", "csv", "markdown", "schema",
					"format as", "structured",
					"表格", "格式化为", "结构化",
					"テーブル", "フォーマット", "構造化",
					"таблица", "форматировать как", "структурированный",
					"tabelle", "formatieren als", "strukturiert",
				},
				Reference: []string{
					"above", "below", "previous", "following", "the docs", "the api",
					"the code", "earlier", "attached",
					"上面", "下面", "之前", "接下来", "文档", "代码", "附件",
					"上記", "下記", "前の", "次の", "ドキュメント", "コード",
					"выше", "ниже", "предыдущий", "следующий", "документация", "код",
					"ранее", "вложение",
					"oben", "unten", "vorherige", "folgende", "dokumentation", "der code",
					"früher", "anhang",
				},
				Negation: []string{
					"don't", "do not", "avoid", "never", "without", "except", "exclude",
					"no longer",
					"不要", "避免", "从不", "没有", "除了", "排除",
					"しないで", "避ける", "決して", "なしで", "除く",
					"не делай", "не надо", "нельзя", "избегать", "никогда", "без",
					"кроме", "исключить", "больше не",
					"nicht", "vermeide", "niemals", "ohne", "außer", "ausschließen", "nicht mehr",
				},
				DomainSpecific: []string{
					"quantum", "fpga", "vlsi", "risc-v", "asic", "photonics", "genomics",
					"proteomics", "topological", "homomorphic", "zero-knowledge", "lattice-based",
					"量子", "光子学", "基因组学", "蛋白质组学", "拓扑", "同态", "零知识", "格密码",
					"フォトニクス", "ゲノミクス", "トポロジカル",
					"квантовый", "фотоника", "геномика", "протеомика", "топологический",
					"гомоморфный", "с нулевым разглашением", "на основе решёток",
					"quanten", "photonik", "genomik", "proteomik", "topologisch",
					"homomorph", "gitterbasiert",
				},
				AgenticTask: []string{
					"read file", "read the file", "look at", "check the", "open the",
					"edit", "modify", "update the", "change the", "write to", "create file",
					"execute", "deploy", "install", "npm", "pip", "compile",
					"after that", "and also", "once done", "step 1", "step 2",
					"fix", "debug", "until it works", "keep trying", "iterate",
					"make sure", "verify", "confirm",
					"读取文件", "查看", "打开", "编辑", "修改", "更新", "创建",
					"执行", "部署", "安装", "第一步", "第二步", "修复", "调试",
					"直到", "确认", "验证",
				},
			},
		},
		Overrides: Overrides{
			MaxTokensForceComplex:   100000,
			StructuredOutputMinTier: TierMedium,
			AmbiguousDefaultTier:    TierMedium,
			AgenticMode:             false,
		},
		TierPreferences: map[string]TierPreference{
			TierSimple: {
				PreferredModels: []string{"gemini-2.0-flash", "deepseek-chat", "gpt-5.2-instant"},
			},
			TierMedium: {
				PreferredModels: []string{"deepseek-chat", "gpt-5.2-instant", "gemini-2.0-flash"},
			},
			TierComplex: {
				PreferredModels: []string{"gemini-2.0-pro", "claude-sonnet-4-20250514", "gpt-5.2-thinking"},
			},
			TierReasoning: {
				PreferredModels: []string{"deepseek-reasoner", "gpt-5.2-pro", "gemini-2.0-pro"},
				Capabilities:    []string{"reasoning"},
			},
		},
		AgenticPreferences: map[string]TierPreference{
			TierSimple: {
				PreferredModels: []string{"claude-haiku-4-20250514", "gpt-5.2-instant", "gemini-2.0-flash"},
				Capabilities:    []string{"tool_call"},
			},
			TierMedium: {
				PreferredModels: []string{"claude-sonnet-4-20250514", "gpt-5.2-codex", "gemini-2.0-flash"},
				Capabilities:    []string{"tool_call"},
			},
			TierComplex: {
				PreferredModels: []string{"claude-sonnet-4-20250514", "claude-opus-4-20250514", "gpt-5.2-codex"},
				Capabilities:    []string{"tool_call"},
			},
			TierReasoning: {
				PreferredModels: []string{"claude-sonnet-4-20250514", "deepseek-reasoner", "gemini-2.0-pro"},
				Capabilities:    []string{"tool_call"},
			},
		},
		// Fallback cost ceilings, expressed as input cost per 1M tokens.
		CostThresholds: map[string]float64{
			TierSimple:    1.0,
			TierMedium:    5.0,
			TierComplex:   20.0,
			TierReasoning: 50.0,
		},
	}
}
