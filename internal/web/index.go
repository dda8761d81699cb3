package web

// indexHTML is the embedded single-page viewer. It only consumes the JSON
// API; the core never depends on it.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Chat Archive</title>
    <style>
        :root {
            --primary: #E86A33;
            --primary-light: #F49A6C;
            --bg: #FAF8F5;
            --card-bg: #FFFFFF;
            --text: #3E3832;
            --text-secondary: #8B7E74;
            --border: #E8DED4;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', sans-serif;
            background: var(--bg);
            color: var(--text);
            min-height: 100vh;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        header {
            background: linear-gradient(135deg, var(--primary), var(--primary-light));
            color: white;
            padding: 30px 20px;
            text-align: center;
            border-radius: 16px;
            margin-bottom: 24px;
        }
        header h1 { font-size: 1.8rem; font-weight: 600; }
        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(150px, 1fr));
            gap: 16px;
            margin-bottom: 24px;
        }
        .stat-card {
            background: var(--card-bg);
            padding: 20px;
            border-radius: 12px;
            text-align: center;
            border: 1px solid var(--border);
        }
        .stat-card .value { font-size: 2rem; font-weight: 700; color: var(--primary); }
        .stat-card .label { color: var(--text-secondary); font-size: 0.9rem; margin-top: 4px; }
        .chat-list { display: grid; gap: 12px; }
        .chat-item {
            background: var(--card-bg);
            padding: 16px 20px;
            border-radius: 12px;
            border: 1px solid var(--border);
            cursor: pointer;
            display: flex;
            justify-content: space-between;
            align-items: center;
        }
        .chat-item:hover { border-color: var(--primary); }
        .chat-info h3 { font-size: 1rem; margin-bottom: 4px; }
        .chat-info .preview { color: var(--text-secondary); font-size: 0.85rem; }
        .chat-meta { text-align: right; font-size: 0.85rem; color: var(--text-secondary); }
        .chat-meta .count { color: var(--primary); font-weight: 600; }
        .type-badge {
            display: inline-block;
            padding: 2px 8px;
            border-radius: 4px;
            font-size: 0.75rem;
            margin-left: 8px;
        }
        .type-private { background: #E3F2FD; color: #1976D2; }
        .type-group { background: #E8F5E9; color: #388E3C; }
        .modal {
            display: none;
            position: fixed;
            top: 0; left: 0; width: 100%; height: 100%;
            background: rgba(0,0,0,0.5);
            z-index: 1000;
        }
        .modal.active { display: flex; align-items: center; justify-content: center; }
        .modal-content {
            background: var(--card-bg);
            border-radius: 16px;
            width: 90%;
            max-width: 700px;
            max-height: 80vh;
            overflow: hidden;
            display: flex;
            flex-direction: column;
        }
        .modal-header {
            padding: 20px;
            border-bottom: 1px solid var(--border);
            display: flex;
            justify-content: space-between;
            align-items: center;
        }
        .modal-close { background: none; border: none; font-size: 1.5rem; cursor: pointer; }
        .modal-body { padding: 20px; overflow-y: auto; flex: 1; }
        .message { margin-bottom: 16px; padding: 12px 16px; border-radius: 12px; }
        .message.user { background: #E3F2FD; margin-left: 40px; }
        .message.assistant { background: #FFF3E0; margin-right: 40px; }
        .message .meta { font-size: 0.75rem; color: var(--text-secondary); margin-bottom: 4px; }
        .message .content { white-space: pre-wrap; word-break: break-word; }
        .load-more { text-align: center; padding: 16px; }
        .load-more button {
            background: var(--primary);
            color: white;
            border: none;
            padding: 10px 24px;
            border-radius: 8px;
            cursor: pointer;
        }
        .empty { text-align: center; padding: 60px 20px; color: var(--text-secondary); }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Chat Archive</h1>
        </header>
        <div class="stats" id="stats"></div>
        <div class="chat-list" id="chatList"></div>
    </div>

    <div class="modal" id="modal">
        <div class="modal-content">
            <div class="modal-header">
                <h2 id="modalTitle">Conversation</h2>
                <button class="modal-close" onclick="closeModal()">&times;</button>
            </div>
            <div class="modal-body" id="modalBody"></div>
        </div>
    </div>

    <script>
        let currentChat = null;
        let currentPage = 1;
        const pageSize = 30;

        async function loadStats() {
            const res = await fetch('/api/stats');
            const stats = await res.json();
            document.getElementById('stats').innerHTML = ` + "`" + `
                <div class="stat-card"><div class="value">${stats.total_chats}</div><div class="label">Chats</div></div>
                <div class="stat-card"><div class="value">${stats.total_messages}</div><div class="label">Messages</div></div>
                <div class="stat-card"><div class="value">${stats.private_chats}</div><div class="label">Private</div></div>
                <div class="stat-card"><div class="value">${stats.group_chats}</div><div class="label">Groups</div></div>
                <div class="stat-card"><div class="value">${stats.total_size_mb}</div><div class="label">Size (MB)</div></div>
            ` + "`" + `;
        }

        async function loadChats() {
            const res = await fetch('/api/chats');
            const chats = await res.json();
            const list = document.getElementById('chatList');

            if (chats.length === 0) {
                list.innerHTML = '<div class="empty"><p>No conversations recorded yet</p></div>';
                return;
            }

            list.innerHTML = chats.map(chat => ` + "`" + `
                <div class="chat-item" onclick="openChat('${chat.filename}', '${chat.chat_id}')">
                    <div class="chat-info">
                        <h3>${chat.chat_id}<span class="type-badge type-${chat.type}">${chat.type}</span></h3>
                        <div class="preview">${escapeHtml(chat.last_message || '')}</div>
                    </div>
                    <div class="chat-meta">
                        <div class="count">${chat.message_count} messages</div>
                        <div>${chat.size_kb} KB</div>
                    </div>
                </div>
            ` + "`" + `).join('');
        }

        async function openChat(filename, chatId) {
            currentChat = filename;
            currentPage = 1;
            document.getElementById('modalTitle').textContent = chatId;
            await loadMessages();
            document.getElementById('modal').classList.add('active');
        }

        async function loadMessages(append = false) {
            const res = await fetch('/api/chat/' + encodeURIComponent(currentChat) + '?page=' + currentPage + '&size=' + pageSize);
            const data = await res.json();
            const body = document.getElementById('modalBody');

            const html = data.messages.map(msg => ` + "`" + `
                <div class="message ${msg.role}">
                    <div class="meta">${escapeHtml(msg.sender_name || msg.role)} &middot; ${new Date(msg.timestamp).toLocaleString()}</div>
                    <div class="content">${escapeHtml(msg.content)}</div>
                </div>
            ` + "`" + `).join('');

            const hasMore = currentPage * pageSize < data.total;
            const loadMoreHtml = hasMore
                ? '<div class="load-more"><button onclick="loadMore()">Load more</button></div>'
                : '';

            if (append) {
                const btn = body.querySelector('.load-more');
                if (btn) btn.remove();
                body.insertAdjacentHTML('beforeend', html + loadMoreHtml);
            } else {
                body.innerHTML = html + loadMoreHtml;
            }
        }

        function loadMore() {
            currentPage++;
            loadMessages(true);
        }

        function closeModal() {
            document.getElementById('modal').classList.remove('active');
        }

        function escapeHtml(text) {
            const div = document.createElement('div');
            div.textContent = text;
            return div.innerHTML;
        }

        document.getElementById('modal').addEventListener('click', (e) => {
            if (e.target.id === 'modal') closeModal();
        });

        loadStats();
        loadChats();
    </script>
</body>
</html>`
