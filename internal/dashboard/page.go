package dashboard

const pageHTML = `<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>ReviewScope</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Inter', -apple-system, system-ui, sans-serif; background: #0f172a; color: #e2e8f0; min-height: 100vh; }
        .header { background: linear-gradient(135deg, #1e293b, #334155); padding: 1.5rem 2rem; border-bottom: 1px solid #475569; }
        .header h1 { font-size: 1.5rem; background: linear-gradient(135deg, #38bdf8, #818cf8); background-clip: text; -webkit-background-clip: text; -webkit-text-fill-color: transparent; }
        main { max-width: 1100px; margin: 0 auto; padding: 2rem; display: flex; flex-direction: column; gap: 1.5rem; }
        .card { background: #1e293b; border: 1px solid #334155; border-radius: 12px; padding: 1.5rem; }
        .card h2 { font-size: 1rem; color: #94a3b8; margin-bottom: 1rem; text-transform: uppercase; letter-spacing: 0.05em; }
        form.search { display: flex; gap: 0.75rem; }
        input[type=text] { flex: 1; padding: 0.75rem 1rem; border-radius: 8px; border: 1px solid #475569; background: #0f172a; color: #f1f5f9; }
        button { padding: 0.75rem 1.25rem; border: 0; border-radius: 8px; background: #38bdf8; color: #0f172a; font-weight: 600; cursor: pointer; }
        button:disabled { opacity: 0.5; cursor: wait; }
        .actions { display: flex; gap: 0.75rem; margin-top: 1rem; }
        .error { border-color: #f87171; color: #fca5a5; }
        .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 1rem; }
        .label { font-size: 0.75rem; color: #94a3b8; margin-bottom: 0.25rem; }
        .value { font-size: 1.25rem; font-weight: 700; color: #f1f5f9; }
        .stat.positive .value { color: #4ade80; }
        .stat.neutral .value { color: #fbbf24; }
        .stat.negative .value { color: #f87171; }
        .similar-product-item a { color: #38bdf8; }
        .chart-container { max-width: 360px; margin: 1rem auto; }
        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 0.5rem; border-bottom: 1px solid #334155; vertical-align: top; }
        .sentiment-badge { padding: 0.2rem 0.6rem; border-radius: 9999px; font-size: 0.75rem; font-weight: 600; }
        .sentiment-badge.positive { background: #166534; color: #4ade80; }
        .sentiment-badge.neutral { background: #854d0e; color: #fde047; }
        .sentiment-badge.negative { background: #991b1b; color: #fca5a5; }
        .footer { text-align: center; padding: 1rem; color: #475569; font-size: 0.75rem; }
    </style>
</head>
<body>
    <div class="header"><h1>ReviewScope</h1></div>
    <main>
        <section class="card">
            <form class="search" method="post" action="/actions/product-info">
                <input type="text" id="productInput" name="product_input" placeholder="https://www.amazon.com/dp/...">
                <button type="submit" id="getInfoBtn"><span class="btn-text">Get info</span><span class="btn-loading" style="display: none">...</span></button>
            </form>
        </section>

        <section class="card" id="loadingSection" style="display: none">
            <p id="loadingText"></p>
        </section>

        <section class="card error" id="errorSection" style="display: none">
            <p id="errorMessage"></p>
        </section>

        <section class="card" id="productInfoSection" style="display: none">
            <h2 id="productName"></h2>
            <div class="grid">
                <div><div class="label">Reviews</div><div class="value" id="totalReviews"></div></div>
                <div><div class="label">Rating</div><div class="value" id="avgRating"></div></div>
                <div><div class="label">Positive</div><div class="value" id="positiveRatio"></div></div>
                <div><div class="label">Negative</div><div class="value" id="negativeRatio"></div></div>
            </div>
            <h2 style="margin-top: 1.5rem">Similar products</h2>
            <div id="similarProducts"></div>
            <div class="actions">
                <form method="post" action="/actions/analyze">
                    <button type="submit" id="analyzeReviewsBtn"><span class="btn-text">Analyze reviews</span><span class="btn-loading" style="display: none">...</span></button>
                </form>
            </div>
        </section>

        <section class="card" id="resultsSection" style="display: none">
            <div class="grid">
                <div class="stat positive"><div class="label">Positive</div><div class="value" id="positiveCount">0</div></div>
                <div class="stat neutral"><div class="label">Neutral</div><div class="value" id="neutralCount">0</div></div>
                <div class="stat negative"><div class="label">Negative</div><div class="value" id="negativeCount">0</div></div>
            </div>
            <div class="chart-container"><canvas id="sentimentChart"></canvas></div>
            <script type="application/json" id="sentimentChartConfig"></script>
            <p id="summaryContent"></p>
        </section>

        <section class="card" id="reviewsDisplaySection" style="display: none">
            <div class="actions" style="margin: 0 0 1rem">
                <form method="post" action="/actions/export">
                    <button type="submit" id="exportCsvBtn"><span class="btn-text">Export CSV</span><span class="btn-loading" style="display: none">...</span></button>
                </form>
            </div>
            <table>
                <thead><tr><th>#</th><th>Rating</th><th>Sentiment</th><th>Review</th></tr></thead>
                <tbody id="reviewsTableBody"></tbody>
            </table>
        </section>
    </main>
    <div class="footer">ReviewScope</div>
    <script>
        (function () {
            const cfgEl = document.getElementById('sentimentChartConfig');
            const text = cfgEl ? cfgEl.textContent.trim() : '';
            if (text && window.Chart) {
                const cfg = JSON.parse(text);
                const tips = cfg.tooltips || [];
                delete cfg.tooltips;
                cfg.options.plugins.tooltip = { callbacks: { label: (ctx) => tips[ctx.dataIndex] || '' } };
                new Chart(document.getElementById('sentimentChart'), cfg);
            }
            const target = document.body.dataset.scrollTarget;
            if (target) {
                const el = document.getElementById(target);
                if (el) el.scrollIntoView({ behavior: 'smooth' });
            }
            document.querySelectorAll('form').forEach((f) => f.addEventListener('submit', () => {
                const b = f.querySelector('button');
                if (!b) return;
                b.disabled = true;
                b.querySelector('.btn-text').style.display = 'none';
                b.querySelector('.btn-loading').style.display = 'inline-block';
            }));
        })();
    </script>
</body>
</html>
`
